package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds accepted in a sample document. They match conversions.Source.
const (
	SourceVector3    = "vector3"
	SourceQuaternion = "quaternion"
	SourceTime       = "time"
	SourceTimeMsg    = "time_msg"
)

// SampleDocument is a list of values to convert
type SampleDocument struct {
	Version     string         `yaml:"version" json:"version"`
	Defaults    SampleDefaults `yaml:"defaults" json:"defaults"`
	Conversions []Sample       `yaml:"conversions" json:"conversions"`
}

// SampleDefaults holds the target used for each source when a sample names none
type SampleDefaults struct {
	TimeTarget       string `yaml:"time_target" json:"time_target"`
	TimeMsgTarget    string `yaml:"time_msg_target" json:"time_msg_target"`
	VectorTarget     string `yaml:"vector_target" json:"vector_target"`
	QuaternionTarget string `yaml:"quaternion_target" json:"quaternion_target"`
}

// Sample is a single simulator value and the middleware type to convert it to.
// Exactly one of the value fields is read, chosen by Source.
type Sample struct {
	Name       string       `yaml:"name,omitempty" json:"name,omitempty"`
	Source     string       `yaml:"source" json:"source"`
	Target     string       `yaml:"target,omitempty" json:"target,omitempty"`
	Time       *TimeValue   `yaml:"time,omitempty" json:"time,omitempty"`
	Serialized string       `yaml:"serialized,omitempty" json:"serialized,omitempty"` // base64 TimeMsg buffer
	Vector     *VectorValue `yaml:"vector,omitempty" json:"vector,omitempty"`
	Quaternion *QuatValue   `yaml:"quaternion,omitempty" json:"quaternion,omitempty"`
}

// TimeValue is a seconds/nanoseconds pair
type TimeValue struct {
	Sec  int32 `yaml:"sec" json:"sec"`
	Nsec int32 `yaml:"nsec" json:"nsec"`
}

// VectorValue is a 3D vector
type VectorValue struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// QuatValue is a quaternion; W defaults to 1 when omitted
type QuatValue struct {
	W *float64 `yaml:"w,omitempty" json:"w,omitempty"`
	X float64  `yaml:"x" json:"x"`
	Y float64  `yaml:"y" json:"y"`
	Z float64  `yaml:"z" json:"z"`
}

// WValue returns W, or 1 when it was not given.
func (q QuatValue) WValue() float64 {
	if q.W == nil {
		return 1
	}
	return *q.W
}

// LoadSamples loads a sample document from the specified file path
func LoadSamples(path string) (*SampleDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sample file: %w", err)
	}
	return ParseSamples(data)
}

// ParseSamples parses a sample document and applies its defaults
func ParseSamples(data []byte) (*SampleDocument, error) {
	var doc SampleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing sample file: %w", err)
	}

	for i := range doc.Conversions {
		doc.Conversions[i] = applyDefaults(doc.Conversions[i], doc.Defaults)
		if err := doc.Conversions[i].validate(); err != nil {
			return nil, fmt.Errorf("invalid sample %d: %w", i, err)
		}
	}

	return &doc, nil
}

// GetSamplesBySource returns samples filtered by source kind
func (d *SampleDocument) GetSamplesBySource(source string) []Sample {
	var result []Sample
	for _, sample := range d.Conversions {
		if sample.Source == source {
			result = append(result, sample)
		}
	}
	return result
}

// TargetFor returns the default target for a source kind
func (d SampleDefaults) TargetFor(source string) string {
	switch source {
	case SourceTime:
		return d.TimeTarget
	case SourceTimeMsg:
		return d.TimeMsgTarget
	case SourceVector3:
		return d.VectorTarget
	case SourceQuaternion:
		return d.QuaternionTarget
	}
	return ""
}

// applyDefaults fills an empty target from the document defaults
func applyDefaults(sample Sample, defaults SampleDefaults) Sample {
	result := sample
	if result.Target == "" {
		result.Target = defaults.TargetFor(result.Source)
	}
	return result
}

func (s Sample) validate() error {
	if s.Source == "" {
		return fmt.Errorf("missing source")
	}
	if s.Target == "" {
		return fmt.Errorf("missing target for source '%s' and no default configured", s.Source)
	}

	switch s.Source {
	case SourceTime:
		if s.Time == nil {
			return fmt.Errorf("source 'time' requires a time value")
		}
	case SourceTimeMsg:
		if s.Time == nil && s.Serialized == "" {
			return fmt.Errorf("source 'time_msg' requires a time value or serialized data")
		}
	case SourceVector3:
		if s.Vector == nil {
			return fmt.Errorf("source 'vector3' requires a vector value")
		}
	case SourceQuaternion:
		if s.Quaternion == nil {
			return fmt.Errorf("source 'quaternion' requires a quaternion value")
		}
	}
	// Unknown sources are left to the registry, which reports them.
	return nil
}
