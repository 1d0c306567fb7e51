package attr

import (
	"fmt"
	"io"

	"github.com/ValentinKolb/sio/lib/wire"
)

// Decoder reads attribute sequences. It embeds a wire.Reader, so custom hooks
// can read free-form primitive values as well.
type Decoder struct {
	*wire.Reader
	depth int
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader, opts ...wire.ReaderOption) *Decoder {
	return &Decoder{Reader: wire.NewReader(r, opts...)}
}

// Depth returns the custom block nesting level of the decoder (0 for top level)
func (d *Decoder) Depth() int {
	return d.depth
}

// ReadTag reads a single tag byte
func (d *Decoder) ReadTag() (Tag, error) {
	b, err := d.ReadByte()
	return Tag(b), err
}

// ReadName reads an attribute name. Names are never null.
func (d *Decoder) ReadName() (string, error) {
	name, ok, err := d.ReadString()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNullName
	}
	return name, nil
}

// ReadValue reads the value bytes of a primitive kind. A null string or enum
// name on the wire yields Null().
func (d *Decoder) ReadValue(t Tag) (Value, error) {
	switch t {
	case TagNull:
		return Null(), nil
	case TagByte:
		v, err := d.ReadByte()
		return Byte(v), err
	case TagShort:
		v, err := d.ReadInt16()
		return Short(v), err
	case TagInt:
		v, err := d.ReadInt32()
		return Int(v), err
	case TagLong:
		v, err := d.ReadInt64()
		return Long(v), err
	case TagFloat:
		v, err := d.ReadFloat32()
		return Float(v), err
	case TagDouble:
		v, err := d.ReadFloat64()
		return Double(v), err
	case TagBool:
		v, err := d.ReadBool()
		return Bool(v), err
	case TagChar:
		v, err := d.ReadChar()
		return Char(v), err
	case TagString, TagEnum:
		s, ok, err := d.ReadString()
		if err != nil || !ok {
			return Null(), err
		}
		if t == TagEnum {
			return Enum(s), nil
		}
		return String(s), nil
	default:
		return Null(), fmt.Errorf("%w: %d", ErrUnknownTag, byte(t))
	}
}

// SkipValue consumes and discards the value bytes of a primitive kind.
// It keeps the stream in sync when an attribute has no registered accessor.
func (d *Decoder) SkipValue(t Tag) error {
	if n, ok := t.fixedWidth(); ok {
		return d.Skip(n)
	}
	switch t {
	case TagNull:
		return nil
	case TagString, TagEnum:
		l, err := d.ReadLength()
		if err != nil {
			return err
		}
		return d.Skip(l)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTag, byte(t))
	}
}

// section creates a decoder confined to the next n bytes (the body of a custom block)
func (d *Decoder) section(n int) (*Decoder, *wire.Section, error) {
	if d.depth+1 > MaxDepth {
		return nil, nil, ErrMaxDepth
	}
	s := d.Section(n)
	return &Decoder{Reader: s.Reader, depth: d.depth + 1}, s, nil
}
