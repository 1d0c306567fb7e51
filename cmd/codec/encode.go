package codec

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/sio/cmd/util"
	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Logger = logger.GetLogger("cmd")

var (
	// EncodeCmd converts a TOML document into its binary encoding
	EncodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Encode a TOML attribute document",
		Long: `Encode a TOML attribute document into an attribute sequence.

The document lists the attributes in write order:

  schema = "profile"

  [[attribute]]
  name  = "id"
  kind  = "int"
  value = 42

Supported kinds: byte, short, int, long, float, double, bool, char,
string, enum and null. A custom block is given as hex string (custom = "...")
or as nested document ([nested]).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			input, err := util.ReadInput(viper.GetString("in"), false)
			if err != nil {
				return err
			}
			data, err := EncodeDocument(input)
			if err != nil {
				return err
			}
			return util.WriteOutput(viper.GetString("out"), data, viper.GetBool("hex"))
		},
	}
)

func init() {
	key := "in"
	EncodeCmd.Flags().String(key, "-", util.WrapString("TOML document to encode (- for stdin)"))
	key = "out"
	EncodeCmd.Flags().String(key, "-", util.WrapString("Destination of the encoded bytes (- for stdout)"))
	key = "hex"
	EncodeCmd.Flags().Bool(key, false, util.WrapString("Write the encoding as hexadecimal text"))
}

// EncodeDocument parses a TOML document, checks it against its schema (if it
// names one) and returns the binary encoding
func EncodeDocument(input []byte) ([]byte, error) {
	doc, err := ParseDocument(input)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if doc.Schema != "" {
		if err := CheckDocument(doc); err != nil {
			return nil, err
		}
	}

	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("encoded %d attributes into %d bytes", len(doc.Attributes), len(data))
	return data, nil
}

// CheckDocument validates a document against the registered schema it names
func CheckDocument(doc *Document) error {
	d, ok := attr.Lookup(doc.Schema)
	if !ok {
		return fmt.Errorf("unknown schema %s", doc.Schema)
	}
	seq, err := doc.Sequence()
	if err != nil {
		return err
	}
	if problems := attr.Check(d, seq); len(problems) > 0 {
		return fmt.Errorf("document does not match schema %s: %w", doc.Schema, errors.Join(problems...))
	}
	return nil
}
