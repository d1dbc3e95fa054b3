// Command simconv converts simulator values listed in a YAML sample
// document into middleware messages and prints the results.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/open-teleop/simbridge/pkg/config"
	"github.com/open-teleop/simbridge/pkg/conversions"
	customlog "github.com/open-teleop/simbridge/pkg/log"
	"github.com/open-teleop/simbridge/pkg/simtypes"
	"google.golang.org/protobuf/types/known/timestamppb"
	"gopkg.in/yaml.v3"
)

// Result is one converted sample as written to the output.
type Result struct {
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
	Mapped bool   `yaml:"mapped" json:"mapped"`
	Value  any    `yaml:"value" json:"value"`
}

// timestampValue is how protobuf timestamps are printed.
type timestampValue struct {
	Seconds int64  `yaml:"seconds" json:"seconds"`
	Nanos   int32  `yaml:"nanos" json:"nanos"`
	RFC3339 string `yaml:"rfc3339" json:"rfc3339"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "simconv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("simconv", flag.ContinueOnError)
	configDir := fs.String("config-dir", "", "directory holding "+config.BootstrapFileName)
	input := fs.String("input", "-", "sample document to convert, - reads stdin")
	format := fs.String("format", "", "output format, yaml or json (overrides the config)")
	listTargets := fs.Bool("list-targets", false, "print the registered target types and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bootstrapCfg := config.DefaultBootstrapConfig()
	if *configDir != "" {
		loaded, err := config.LoadBootstrapConfig(*configDir)
		if err != nil {
			return fmt.Errorf("failed to load bootstrap config: %w", err)
		}
		bootstrapCfg = loaded
	}
	if *format != "" {
		bootstrapCfg.Output.Format = *format
		if err := bootstrapCfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := customlog.NewLogrusLogger(bootstrapCfg.Logging.Level, bootstrapCfg.Logging.LogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	conversions.SetLogger(logger)

	registry := conversions.DefaultRegistry()

	if *listTargets {
		for _, name := range registry.Targets() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	data, err := readInput(*input, stdin)
	if err != nil {
		return err
	}

	doc, err := config.ParseSamples(data)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d samples (version: %s)", len(doc.Conversions), doc.Version)

	results := make([]Result, 0, len(doc.Conversions))
	for i, sample := range doc.Conversions {
		in, err := sampleInput(sample)
		if err != nil {
			return fmt.Errorf("sample %d (%s): %w", i, sample.Name, err)
		}

		out, mapped, err := registry.Convert(conversions.Source(sample.Source), sample.Target, in)
		if err != nil {
			return fmt.Errorf("sample %d (%s): %w", i, sample.Name, err)
		}
		if !mapped {
			logger.WithField("sample", i).Warnf("No conversion defined from %s to %s, writing default value",
				sample.Source, sample.Target)
		}

		results = append(results, Result{
			Name:   sample.Name,
			Source: sample.Source,
			Target: sample.Target,
			Mapped: mapped,
			Value:  render(out),
		})
	}

	logger.Debugf("Writing %d results as %s", len(results), bootstrapCfg.Output.Format)
	return writeResults(stdout, bootstrapCfg.Output.Format, results)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading samples from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sample file '%s': %w", path, err)
	}
	return data, nil
}

// sampleInput builds the simulator value a sample describes.
func sampleInput(s config.Sample) (any, error) {
	switch s.Source {
	case config.SourceTime:
		return simtypes.Time{Sec: s.Time.Sec, Nsec: s.Time.Nsec}, nil
	case config.SourceTimeMsg:
		buf, err := timeMsgBytes(s)
		if err != nil {
			return nil, err
		}
		return simtypes.GetRootAsTimeMsg(buf, 0), nil
	case config.SourceVector3:
		return simtypes.NewVector3d(s.Vector.X, s.Vector.Y, s.Vector.Z), nil
	case config.SourceQuaternion:
		q := s.Quaternion
		return simtypes.NewQuaterniond(q.WValue(), q.X, q.Y, q.Z), nil
	}
	return nil, fmt.Errorf("%w: %s", conversions.ErrUnknownSource, s.Source)
}

// timeMsgBytes returns the serialized TimeMsg for a sample, decoding it when
// given as base64 and building it from the time value otherwise.
func timeMsgBytes(s config.Sample) ([]byte, error) {
	if s.Serialized == "" {
		return simtypes.MarshalTimeMsg(simtypes.Time{Sec: s.Time.Sec, Nsec: s.Time.Nsec}), nil
	}

	buf, err := base64.StdEncoding.DecodeString(s.Serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to decode serialized time message: %w", err)
	}
	if err := simtypes.VerifyTimeMsg(buf); err != nil {
		return nil, fmt.Errorf("failed to read serialized time message: %w", err)
	}
	return buf, nil
}

func render(v any) any {
	if ts, ok := v.(*timestamppb.Timestamp); ok {
		if ts == nil {
			return nil
		}
		return timestampValue{
			Seconds: ts.GetSeconds(),
			Nanos:   ts.GetNanos(),
			RFC3339: ts.AsTime().Format(time.RFC3339Nano),
		}
	}
	return v
}

func writeResults(w io.Writer, format string, results []Result) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to write JSON results: %w", err)
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to write YAML results: %w", err)
		}
		return enc.Close()
	}
}
