package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/open-teleop/simbridge/pkg/conversions"
	"github.com/open-teleop/simbridge/pkg/simtypes"
	"gopkg.in/yaml.v3"
)

const testSamples = `
version: "1.0"
defaults:
  time_target: "builtin_interfaces/msg/Time"
  time_msg_target: "builtin_interfaces/msg/Time"
  vector_target: "geometry_msgs/msg/Vector3"
  quaternion_target: "geometry_msgs/msg/Quaternion"
conversions:
  - name: "clock"
    source: "time"
    time: {sec: 1700000000, nsec: 42}
  - name: "clock object"
    source: "time"
    target: "rclcpp/Time"
    time: {sec: 2, nsec: 5}
  - name: "clock protobuf"
    source: "time"
    target: "google.protobuf.Timestamp"
    time: {sec: 0, nsec: 1}
  - name: "clock message"
    source: "time_msg"
    time: {sec: 7, nsec: 9}
  - name: "position"
    source: "vector3"
    vector: {x: 1, y: 2, z: 3}
  - name: "orientation"
    source: "quaternion"
    quaternion: {x: 0, y: 0, z: 1, w: 0}
`

type jsonResult struct {
	Name   string          `json:"name"`
	Source string          `json:"source"`
	Target string          `json:"target"`
	Mapped bool            `json:"mapped"`
	Value  json.RawMessage `json:"value"`
}

func runJSON(t *testing.T, input string, extraArgs ...string) []jsonResult {
	t.Helper()

	var out bytes.Buffer
	args := append([]string{"-format", "json"}, extraArgs...)
	if err := run(args, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var results []jsonResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("Failed to parse output: %v\n%s", err, out.String())
	}
	return results
}

func TestRunConvertsSamples(t *testing.T) {
	results := runJSON(t, testSamples)
	if len(results) != 6 {
		t.Fatalf("Expected 6 results, got %d", len(results))
	}

	tests := []struct {
		name   string
		target string
		mapped bool
		value  string
	}{
		{"clock", "builtin_interfaces/msg/Time", true, `{"sec":1700000000,"nanosec":42}`},
		{"clock object", "rclcpp/Time", true, `{"nanoseconds":2000000005,"clock_type":"ros"}`},
		{"clock protobuf", "google.protobuf.Timestamp", true, `{"seconds":0,"nanos":1,"rfc3339":"1970-01-01T00:00:00.000000001Z"}`},
		{"clock message", "builtin_interfaces/msg/Time", true, `{"sec":7,"nanosec":9}`},
		{"position", "geometry_msgs/msg/Vector3", false, `{"x":0,"y":0,"z":0}`},
		{"orientation", "geometry_msgs/msg/Quaternion", false, `{"x":0,"y":0,"z":0,"w":1}`},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := results[i]
			if got.Name != tt.name || got.Target != tt.target {
				t.Errorf("Expected %s -> %s, got %s -> %s", tt.name, tt.target, got.Name, got.Target)
			}
			if got.Mapped != tt.mapped {
				t.Errorf("Expected mapped=%v, got %v", tt.mapped, got.Mapped)
			}

			var compact bytes.Buffer
			if err := json.Compact(&compact, got.Value); err != nil {
				t.Fatalf("Invalid value JSON: %v", err)
			}
			if diff := cmp.Diff(tt.value, compact.String()); diff != "" {
				t.Errorf("Value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunSerializedTimeMsg(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(simtypes.MarshalTimeMsg(simtypes.Time{Sec: 31, Nsec: 415926535}))
	input := `
conversions:
  - source: "time_msg"
    target: "builtin_interfaces/msg/Time"
    serialized: "` + payload + `"
`

	results := runJSON(t, input)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, results[0].Value); err != nil {
		t.Fatalf("Invalid value JSON: %v", err)
	}
	if compact.String() != `{"sec":31,"nanosec":415926535}` {
		t.Errorf("Unexpected value %s", compact.String())
	}
}

func TestRunYAMLOutputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.yaml")
	if err := os.WriteFile(path, []byte(testSamples), 0644); err != nil {
		t.Fatalf("Failed to write samples: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"-input", path}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var results []struct {
		Name   string         `yaml:"name"`
		Mapped bool           `yaml:"mapped"`
		Value  map[string]any `yaml:"value"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("Failed to parse YAML output: %v\n%s", err, out.String())
	}
	if len(results) != 6 {
		t.Fatalf("Expected 6 results, got %d", len(results))
	}
	if results[1].Value["clock_type"] != "ros" {
		t.Errorf("Expected clock_type ros, got %v", results[1].Value["clock_type"])
	}
	if results[0].Value["nanosec"] != 42 {
		t.Errorf("Expected nanosec 42, got %v", results[0].Value["nanosec"])
	}
}

func TestRunConfigDir(t *testing.T) {
	configDir := t.TempDir()
	content := "logging:\n  level: \"error\"\noutput:\n  format: \"json\"\n"
	if err := os.WriteFile(filepath.Join(configDir, "simconv_config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"-config-dir", configDir}, strings.NewReader(testSamples), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out.String()), "[") {
		t.Errorf("Expected JSON output from config format, got %q", out.String())
	}
}

func TestRunListTargets(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-list-targets"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := strings.Join(conversions.DefaultRegistry().Targets(), "\n") + "\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		input   string
		wantErr error
		errPart string
	}{
		{
			name:    "unknown target",
			input:   "conversions:\n  - source: \"time\"\n    target: \"std_msgs/msg/String\"\n    time: {sec: 1, nsec: 2}\n",
			wantErr: conversions.ErrUnknownTarget,
		},
		{
			name:    "unknown source",
			input:   "conversions:\n  - source: \"pose\"\n    target: \"builtin_interfaces/msg/Time\"\n",
			wantErr: conversions.ErrUnknownSource,
		},
		{
			name:    "bad base64",
			input:   "conversions:\n  - source: \"time_msg\"\n    target: \"builtin_interfaces/msg/Time\"\n    serialized: \"!!\"\n",
			errPart: "failed to decode serialized time message",
		},
		{
			name:    "short buffer",
			input:   "conversions:\n  - source: \"time_msg\"\n    target: \"builtin_interfaces/msg/Time\"\n    serialized: \"AAAA\"\n",
			errPart: "too short for a root offset",
		},
		{
			name:    "vtable outside buffer",
			input:   "conversions:\n  - source: \"time_msg\"\n    target: \"builtin_interfaces/msg/Time\"\n    serialized: \"BAAAABj8//8=\"\n",
			wantErr: simtypes.ErrInvalidTimeMsg,
			errPart: "failed to read serialized time message",
		},
		{
			name:    "bad format flag",
			args:    []string{"-format", "xml"},
			input:   testSamples,
			errPart: "invalid value in bootstrap config: output.format",
		},
		{
			name:    "missing config dir",
			args:    []string{"-config-dir", filepath.Join(os.TempDir(), "simconv-does-not-exist")},
			input:   testSamples,
			errPart: "failed to load bootstrap config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.input), &out)
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.errPart != "" && !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing '%s', got: %v", tt.errPart, err)
			}
		})
	}
}
