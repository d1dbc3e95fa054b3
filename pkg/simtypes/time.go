// Package simtypes holds the simulator-side values the bridge reads from:
// the simulation clock, its serialized message form, and the math types used
// for poses.
package simtypes

import (
	"fmt"
	"math"
	"time"
)

const nsPerSecond = int64(time.Second)

// Time is the simulator's time value. It is used both as an absolute
// simulation time and as a duration.
type Time struct {
	Sec  int32 `yaml:"sec" json:"sec"`
	Nsec int32 `yaml:"nsec" json:"nsec"`
}

// NewTime returns a Time with nsec folded into sec so that Nsec lies in
// [0, 1e9), borrowing from Sec when nsec is negative. A result outside the
// int32 second range saturates to MaxTime or MinTime. Struct literals are
// left as written.
func NewTime(sec, nsec int32) Time {
	return normalize(int64(sec), int64(nsec))
}

// FromDuration splits d into whole seconds and nanoseconds. Durations beyond
// the int32 second range (about 68 years) saturate to MaxTime or MinTime.
func FromDuration(d time.Duration) Time {
	return normalize(0, int64(d))
}

// Bounds of the representable normalized range.
var (
	MaxTime = Time{Sec: math.MaxInt32, Nsec: int32(nsPerSecond - 1)}
	MinTime = Time{Sec: math.MinInt32, Nsec: 0}
)

// Duration returns t as a time.Duration.
func (t Time) Duration() time.Duration {
	return time.Duration(int64(t.Sec)*nsPerSecond + int64(t.Nsec))
}

// Double returns t in seconds.
func (t Time) Double() float64 {
	return float64(t.Sec) + float64(t.Nsec)*1e-9
}

func (t Time) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}

func normalize(sec, nsec int64) Time {
	sec += nsec / nsPerSecond
	nsec %= nsPerSecond
	if nsec < 0 {
		sec--
		nsec += nsPerSecond
	}
	switch {
	case sec > math.MaxInt32:
		return MaxTime
	case sec < math.MinInt32:
		return MinTime
	}
	return Time{Sec: int32(sec), Nsec: int32(nsec)}
}
