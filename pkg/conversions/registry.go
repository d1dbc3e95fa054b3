package conversions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/open-teleop/simbridge/pkg/rosmsg"
	"github.com/open-teleop/simbridge/pkg/simtypes"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Source names the simulator type a conversion reads.
type Source string

const (
	SourceVector3    Source = "vector3"
	SourceQuaternion Source = "quaternion"
	SourceTime       Source = "time"
	SourceTimeMsg    Source = "time_msg"
)

// Sources lists every source kind in a stable order.
var Sources = []Source{SourceVector3, SourceQuaternion, SourceTime, SourceTimeMsg}

// Registry errors. They only arise when sources or targets are named at
// runtime; a known pair without a mapping is not an error.
var (
	ErrUnknownSource  = errors.New("unknown conversion source")
	ErrUnknownTarget  = errors.New("unknown conversion target")
	ErrSourceMismatch = errors.New("input does not match conversion source")
)

// Func converts a single input value.
type Func func(in any) any

type pair struct {
	source Source
	target string
}

// Registry maps (source, target type name) pairs to conversion functions.
// Populate it before use; it is not safe to register concurrently with
// lookups.
type Registry struct {
	targets map[string]func() any
	pairs   map[pair]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]func() any),
		pairs:   make(map[pair]Func),
	}
}

// DefaultRegistry returns a registry holding every middleware target and
// each pair the generic conversions define.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	RegisterType[rosmsg.Time](r, rosmsg.TimeTypeName)
	RegisterType[rosmsg.ClockTime](r, rosmsg.ClockTimeTypeName)
	RegisterType[rosmsg.Vector3](r, rosmsg.Vector3TypeName)
	RegisterType[rosmsg.Quaternion](r, rosmsg.QuaternionTypeName)
	RegisterType[*timestamppb.Timestamp](r, TimestampTypeName)

	RegisterFunc(r, SourceTime, rosmsg.TimeTypeName, ConvertTime[rosmsg.Time])
	RegisterFunc(r, SourceTime, rosmsg.ClockTimeTypeName, ConvertTime[rosmsg.ClockTime])
	RegisterFunc(r, SourceTime, TimestampTypeName, ConvertTime[*timestamppb.Timestamp])
	RegisterFunc(r, SourceTimeMsg, rosmsg.TimeTypeName, ConvertTimeMsg[rosmsg.Time])
	RegisterFunc(r, SourceTimeMsg, TimestampTypeName, ConvertTimeMsg[*timestamppb.Timestamp])

	return r
}

// RegisterType adds Out as a target named name. Its default value is
// what unmapped pairs produce.
func RegisterType[Out any](r *Registry, name string) {
	r.RegisterTarget(name, func() any { return defaultOf[Out]() })
}

// RegisterFunc maps (src, target) to conv.
func RegisterFunc[In, Out any](r *Registry, src Source, target string, conv func(In) Out) {
	r.Register(src, target, func(in any) any { return conv(in.(In)) })
}

// RegisterTarget adds a target type name and the constructor of its
// default value.
func (r *Registry) RegisterTarget(name string, newDefault func() any) {
	r.targets[name] = newDefault
}

// Register maps (src, target) to fn. The input handed to fn has already
// been checked against src.
func (r *Registry) Register(src Source, target string, fn Func) {
	r.pairs[pair{source: src, target: target}] = fn
}

// Lookup returns the function mapped to (src, target), if any.
func (r *Registry) Lookup(src Source, target string) (Func, bool) {
	fn, ok := r.pairs[pair{source: src, target: target}]
	return fn, ok
}

// Targets returns the registered target names, sorted.
func (r *Registry) Targets() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Convert converts in, read as src, to the target named target. mapped
// reports whether a conversion was defined; when it is false out is the
// target's default value.
func (r *Registry) Convert(src Source, target string, in any) (out any, mapped bool, err error) {
	if err := checkSource(src, in); err != nil {
		return nil, false, err
	}

	newDefault, ok := r.targets[target]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	if fn, ok := r.Lookup(src, target); ok {
		return fn(in), true, nil
	}

	logger.Debugf("No conversion from %s to %s, returning default value", src, target)
	return newDefault(), false, nil
}

func checkSource(src Source, in any) error {
	var ok bool
	switch src {
	case SourceVector3:
		_, ok = in.(simtypes.Vector3d)
	case SourceQuaternion:
		_, ok = in.(simtypes.Quaterniond)
	case SourceTime:
		_, ok = in.(simtypes.Time)
	case SourceTimeMsg:
		var msg *simtypes.TimeMsg
		msg, ok = in.(*simtypes.TimeMsg)
		ok = ok && msg != nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSource, src)
	}
	if !ok {
		return fmt.Errorf("%w: %s cannot read %T", ErrSourceMismatch, src, in)
	}
	return nil
}
