package conversions

import (
	"github.com/open-teleop/simbridge/pkg/rosmsg"
	"github.com/open-teleop/simbridge/pkg/simtypes"
)

// timeToMsg copies seconds and nanoseconds into a Time message as they are.
func timeToMsg(sec, nsec int32) rosmsg.Time {
	return rosmsg.Time{
		Sec:     sec,
		Nanosec: uint32(nsec),
	}
}

// timeToClockTime stamps the simulator time on the ROS clock.
func timeToClockTime(in simtypes.Time) rosmsg.ClockTime {
	return rosmsg.NewClockTime(in.Sec, uint32(in.Nsec), rosmsg.ClockROSTime)
}
