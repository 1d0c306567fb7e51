package codec

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/ValentinKolb/sio/lib/serializer"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// BenchCmd compares the sio format with json and gob on the sample profile
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare encode and decode timings of sio, json and gob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			iterations := viper.GetInt("iterations")
			if iterations <= 0 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}

			registry := metrics.NewRegistry()
			results, err := RunBench(registry, iterations)
			if err != nil {
				return err
			}
			PrintBench(os.Stdout, results)

			if viper.GetBool("verbose") {
				fmt.Println()
				metrics.WriteOnce(registry, os.Stdout)
			}
			return nil
		},
	}
)

func init() {
	key := "iterations"
	BenchCmd.Flags().Int(key, 10000, util.WrapString("Number of encode/decode round trips per format"))
	key = "verbose"
	BenchCmd.Flags().Bool(key, false, util.WrapString("Print all collected metrics after the summary"))
}

// BenchResult holds the timers of one serializer
type BenchResult struct {
	Format string
	Size   int
	Encode metrics.Timer
	Decode metrics.Timer
}

// benchFormats lists the serializers compared by RunBench
var benchFormats = []string{"sio", "json", "gob"}

// RunBench encodes and decodes the sample profile iterations times with every
// serializer. The timers are registered in registry as <format>.encode and <format>.decode.
func RunBench(registry metrics.Registry, iterations int) ([]BenchResult, error) {
	sample := SampleProfile()
	results := make([]BenchResult, 0, len(benchFormats))

	for _, format := range benchFormats {
		s, err := serializer.New[Profile](format, ProfileSchema)
		if err != nil {
			return nil, err
		}

		res := BenchResult{
			Format: format,
			Encode: metrics.GetOrRegisterTimer(format+".encode", registry),
			Decode: metrics.GetOrRegisterTimer(format+".decode", registry),
		}
		size := metrics.GetOrRegisterHistogram(format+".size", registry, metrics.NewUniformSample(1028))

		for i := 0; i < iterations; i++ {
			start := time.Now()
			data, err := s.Serialize(sample)
			if err != nil {
				return nil, fmt.Errorf("%s: serialize: %w", format, err)
			}
			res.Encode.UpdateSince(start)
			size.Update(int64(len(data)))
			res.Size = len(data)

			var out Profile
			start = time.Now()
			if err := s.Deserialize(data, &out); err != nil {
				return nil, fmt.Errorf("%s: deserialize: %w", format, err)
			}
			res.Decode.UpdateSince(start)
		}
		Logger.Debugf("bench %s: %d iterations done", format, iterations)
		results = append(results, res)
	}
	return results, nil
}

// PrintBench writes a summary table of the results
func PrintBench(w io.Writer, results []BenchResult) {
	fmt.Fprintf(w, "%-6s %8s %14s %14s %14s %14s\n", "format", "bytes", "encode mean", "encode p99", "decode mean", "decode p99")
	for _, r := range results {
		enc := r.Encode.Snapshot()
		dec := r.Decode.Snapshot()
		fmt.Fprintf(w, "%-6s %8d %14s %14s %14s %14s\n",
			r.Format,
			r.Size,
			time.Duration(enc.Mean()),
			time.Duration(enc.Percentile(0.99)),
			time.Duration(dec.Mean()),
			time.Duration(dec.Percentile(0.99)),
		)
	}
}
