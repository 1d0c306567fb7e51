package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/ValentinKolb/sio/lib/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// InspectCmd prints the contents of an encoded sequence without a schema
	InspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Print the attributes of an encoded sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			data, err := util.ReadInput(viper.GetString("in"), viper.GetBool("hex"))
			if err != nil {
				return err
			}
			conf := util.GetConfig()
			return Inspect(os.Stdout, data, viper.GetString("format"), viper.GetBool("recursive"), util.ReaderOptions(conf)...)
		},
	}
)

func init() {
	key := "in"
	InspectCmd.Flags().String(key, "-", util.WrapString("Encoded sequence to inspect (- for stdin)"))
	key = "hex"
	InspectCmd.Flags().Bool(key, false, util.WrapString("Read the input as hexadecimal text"))
	key = "recursive"
	InspectCmd.Flags().Bool(key, true, util.WrapString("Try to decode custom blocks as nested sequences"))
	key = "format"
	InspectCmd.Flags().String(key, "text", util.WrapString("Output format (text, toml). The toml output can be fed back to encode"))
}

// Inspect decodes data as a single sequence and writes it in the given format
func Inspect(w io.Writer, data []byte, format string, recursive bool, opts ...wire.ReaderOption) error {
	dec := attr.NewDecoder(bytes.NewReader(data), opts...)
	seq, err := attr.ReadSequence(dec)
	if err != nil {
		return fmt.Errorf("decoding failed at byte %d: %w", dec.Count(), err)
	}
	if rest := int64(len(data)) - dec.Count(); rest > 0 {
		Logger.Warningf("%d bytes after the end of the sequence", rest)
	}

	switch format {
	case "text":
		return WriteText(w, seq, recursive)
	case "toml":
		out, err := FromSequence(seq, recursive).Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("invalid format %s. must be one of text, toml", format)
	}
}
