package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/ValentinKolb/sio/lib/attr"
)

// WriteText writes a human readable listing of seq, one attribute per line.
// With recursive set, custom blocks holding a valid sequence are listed
// indented below the block.
func WriteText(w io.Writer, seq *attr.Sequence, recursive bool) error {
	return writeText(w, seq, recursive, 0)
}

func writeText(w io.Writer, seq *attr.Sequence, recursive bool, depth int) error {
	indent := strings.Repeat("  ", depth)

	for _, a := range seq.Attributes {
		if _, err := fmt.Fprintf(w, "%s%-7s %s = %s\n", indent, a.Value.Kind(), a.Name, a.Value); err != nil {
			return err
		}
	}

	if len(seq.Custom) > 0 {
		if _, err := fmt.Fprintf(w, "%s%-7s %d bytes\n", indent, attr.TagCustom, len(seq.Custom)); err != nil {
			return err
		}
		if recursive {
			nested, err := seq.Nested()
			if err == nil {
				if err := writeText(w, nested, recursive, depth+1); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "%s  (opaque: %v)\n", indent, err); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "%s%s\n", indent, attr.TagEnd)
	return err
}
