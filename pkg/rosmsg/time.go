// Package rosmsg defines the middleware-side messages the bridge produces.
//
// Every type carries its ROS 2 type name and a SetDefaults method that
// restores the value the middleware's own default constructor would build.
package rosmsg

import (
	"fmt"
	"strings"
)

const nsPerSecond = int64(1000000000)

// Type names.
const (
	TimeTypeName       = "builtin_interfaces/msg/Time"
	ClockTimeTypeName  = "rclcpp/Time"
	Vector3TypeName    = "geometry_msgs/msg/Vector3"
	QuaternionTypeName = "geometry_msgs/msg/Quaternion"
)

// Time mirrors builtin_interfaces/msg/Time.
type Time struct {
	Sec     int32  `yaml:"sec" json:"sec"`
	Nanosec uint32 `yaml:"nanosec" json:"nanosec"`
}

func NewTime() *Time {
	t := &Time{}
	t.SetDefaults()
	return t
}

func (t *Time) TypeName() string { return TimeTypeName }

func (t *Time) SetDefaults() {
	t.Sec = 0
	t.Nanosec = 0
}

// ClockType identifies the clock a ClockTime was taken from.
type ClockType uint8

const (
	ClockUninitialized ClockType = iota
	ClockROSTime
	ClockSystemTime
	ClockSteadyTime
)

var clockTypeNames = map[ClockType]string{
	ClockUninitialized: "uninitialized",
	ClockROSTime:       "ros",
	ClockSystemTime:    "system",
	ClockSteadyTime:    "steady",
}

func (c ClockType) String() string {
	if name, ok := clockTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ClockType(%d)", uint8(c))
}

// ParseClockType is the inverse of ClockType.String.
func ParseClockType(s string) (ClockType, error) {
	for c, name := range clockTypeNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return ClockUninitialized, fmt.Errorf("unknown clock type '%s'", s)
}

func (c ClockType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockType) UnmarshalText(text []byte) error {
	parsed, err := ParseClockType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockType) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// ClockTime is the middleware's in-memory time point: nanoseconds since the
// clock's epoch plus the clock it belongs to.
type ClockTime struct {
	Nanoseconds int64     `yaml:"nanoseconds" json:"nanoseconds"`
	Clock       ClockType `yaml:"clock_type" json:"clock_type"`
}

// NewClockTime builds a ClockTime from a seconds/nanoseconds pair.
func NewClockTime(sec int32, nanosec uint32, clock ClockType) ClockTime {
	return ClockTime{
		Nanoseconds: int64(sec)*nsPerSecond + int64(nanosec),
		Clock:       clock,
	}
}

func (t *ClockTime) TypeName() string { return ClockTimeTypeName }

// SetDefaults resets t to zero on the system clock.
func (t *ClockTime) SetDefaults() {
	t.Nanoseconds = 0
	t.Clock = ClockSystemTime
}

// Seconds returns the time point in floating-point seconds.
func (t ClockTime) Seconds() float64 {
	return float64(t.Nanoseconds) / float64(nsPerSecond)
}

// ToMsg splits the time point back into a Time message. Nanosec is always in
// [0, 1e9); negative time points borrow from Sec.
func (t ClockTime) ToMsg() Time {
	sec := t.Nanoseconds / nsPerSecond
	rem := t.Nanoseconds % nsPerSecond
	if rem < 0 {
		sec--
		rem += nsPerSecond
	}
	return Time{Sec: int32(sec), Nanosec: uint32(rem)}
}
