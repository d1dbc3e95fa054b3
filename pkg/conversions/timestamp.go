package conversions

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// TimestampTypeName is the registry name of the protobuf timestamp target.
const TimestampTypeName = "google.protobuf.Timestamp"

func timeToTimestamp(sec, nsec int32) *timestamppb.Timestamp {
	return &timestamppb.Timestamp{
		Seconds: int64(sec),
		Nanos:   nsec,
	}
}
