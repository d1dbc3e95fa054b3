// Package conversions translates simulator values into middleware messages.
//
// Each source type has one generic operation parameterized by the output
// type. Pairs with a defined mapping copy fields across; every other pair
// yields the default value of the output type. Nothing here returns an
// error.
package conversions

import (
	"fmt"

	customlog "github.com/open-teleop/simbridge/pkg/log"
	"github.com/open-teleop/simbridge/pkg/rosmsg"
	"github.com/open-teleop/simbridge/pkg/simtypes"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// LoggerName tags entries from the shared conversions logger.
const LoggerName = "simbridge_conversions"

// logger is shared by all conversions.
var logger customlog.Logger = customlog.NewComponentLogger(LoggerName)

// SetLogger replaces the shared conversions logger. Call it once at startup.
func SetLogger(l customlog.Logger) {
	if l == nil {
		return
	}
	logger = l.WithField("component", LoggerName)
}

// defaulter is implemented by message types whose default differs from the
// Go zero value.
type defaulter interface {
	SetDefaults()
}

// ConvertVector3 converts a simulator vector to Out.
func ConvertVector3[Out any](in simtypes.Vector3d) Out {
	return unmapped[Out](SourceVector3)
}

// ConvertQuaternion converts a simulator quaternion to Out.
func ConvertQuaternion[Out any](in simtypes.Quaterniond) Out {
	return unmapped[Out](SourceQuaternion)
}

// ConvertTime converts a simulator time to Out. Defined targets are
// rosmsg.Time, rosmsg.ClockTime and *timestamppb.Timestamp.
func ConvertTime[Out any](in simtypes.Time) Out {
	var out Out
	switch p := any(&out).(type) {
	case *rosmsg.Time:
		*p = timeToMsg(in.Sec, in.Nsec)
	case *rosmsg.ClockTime:
		*p = timeToClockTime(in)
	case **timestamppb.Timestamp:
		*p = timeToTimestamp(in.Sec, in.Nsec)
	default:
		return unmapped[Out](SourceTime)
	}
	return out
}

// ConvertTimeMsg converts a serialized simulator time to Out. Defined
// targets are rosmsg.Time and *timestamppb.Timestamp. in must not be nil.
func ConvertTimeMsg[Out any](in *simtypes.TimeMsg) Out {
	var out Out
	switch p := any(&out).(type) {
	case *rosmsg.Time:
		*p = timeToMsg(in.Sec(), in.Nsec())
	case **timestamppb.Timestamp:
		*p = timeToTimestamp(in.Sec(), in.Nsec())
	default:
		return unmapped[Out](SourceTimeMsg)
	}
	return out
}

// unmapped returns the default value of Out.
func unmapped[Out any](src Source) Out {
	out := defaultOf[Out]()
	logger.Debugf("No conversion from %s to %s, returning default value", src, typeName(&out))
	return out
}

func defaultOf[Out any]() Out {
	var out Out
	if d, ok := any(&out).(defaulter); ok {
		d.SetDefaults()
	}
	return out
}

func typeName[Out any](out *Out) string {
	if n, ok := any(out).(interface{ TypeName() string }); ok {
		return n.TypeName()
	}
	return fmt.Sprintf("%T", *out)
}
