package codec

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/spf13/cobra"
)

var (
	// MetricsCmd runs a sample round trip and prints the codec metrics
	MetricsCmd = &cobra.Command{
		Use:   "metrics",
		Short: "Print the codec metrics in Prometheus format after a sample run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := SampleRun(); err != nil {
				return err
			}
			attr.WriteMetrics(os.Stdout)
			return nil
		},
	}
)

// SampleRun encodes and decodes the sample profile once and reads the result
// again with a schema that only knows the id, so skipped attributes are counted.
func SampleRun() error {
	data, err := ProfileSchema.Marshal(SampleProfile())
	if err != nil {
		return err
	}

	var out Profile
	if err := ProfileSchema.Unmarshal(data, &out); err != nil {
		return err
	}

	type partial struct{ ID int32 }
	reduced := attr.NewSchema[partial]("partial").MustRegister(
		attr.Bind("id", func(p *partial) *int32 { return &p.ID }),
	)
	var p partial
	if err := reduced.Decode(attr.NewDecoder(bytes.NewReader(data)), &p); err != nil {
		return err
	}
	if p.ID != out.ID {
		return fmt.Errorf("partial decode returned id %d, want %d", p.ID, out.ID)
	}
	return nil
}
