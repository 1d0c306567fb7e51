package codec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/spf13/cobra"
)

var (
	// SchemasCmd lists the registered schemas and their attributes
	SchemasCmd = &cobra.Command{
		Use:   "schemas",
		Short: "List the registered schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return WriteSchemas(os.Stdout, attr.DefaultRegistry)
		},
	}
)

// WriteSchemas writes every schema of the registry with its attributes in write order
func WriteSchemas(w io.Writer, r *attr.Registry) error {
	for _, name := range r.Names() {
		d, _ := r.Lookup(name)
		if _, err := fmt.Fprintf(w, "%s\n", strings.ToUpper(name)); err != nil {
			return err
		}
		for _, f := range d.Fields() {
			kind := f.Kind.String()
			if f.Enum != nil {
				kind = fmt.Sprintf("%s %s(%s)", kind, f.Enum.TypeName(), strings.Join(f.Enum.Variants(), "|"))
			}
			if _, err := fmt.Fprintf(w, "  %-22s: %s\n", f.Name, kind); err != nil {
				return err
			}
		}
	}
	return nil
}
