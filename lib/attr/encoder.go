package attr

import (
	"errors"
	"fmt"
	"io"

	"github.com/ValentinKolb/sio/lib/wire"
)

// MaxDepth is the maximum nesting depth of custom blocks
const MaxDepth = 64

// ErrMaxDepth is returned when custom blocks are nested deeper than MaxDepth
var ErrMaxDepth = errors.New("attr: maximum nesting depth exceeded")

// Encoder writes attribute sequences. It embeds a wire.Writer, so custom
// hooks can write free-form primitive values as well.
type Encoder struct {
	*wire.Writer
	depth int
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{Writer: wire.NewWriter(w)}
}

// Depth returns the custom block nesting level of the encoder (0 for top level)
func (e *Encoder) Depth() int {
	return e.depth
}

// nested creates an encoder for the contents of a custom block
func (e *Encoder) nested(w io.Writer) (*Encoder, error) {
	if e.depth+1 > MaxDepth {
		return nil, ErrMaxDepth
	}
	return &Encoder{Writer: wire.NewWriter(w), depth: e.depth + 1}, nil
}

// WriteTag writes a single tag byte
func (e *Encoder) WriteTag(t Tag) error {
	return e.WriteByte(byte(t))
}

// WriteValue writes the value bytes of v (without tag). Null values have no value bytes.
func (e *Encoder) WriteValue(v Value) error {
	switch v.Kind() {
	case TagNull:
		return nil
	case TagByte:
		return e.WriteByte(v.Byte())
	case TagShort:
		return e.WriteInt16(v.Short())
	case TagInt:
		return e.WriteInt32(v.Int())
	case TagLong:
		return e.WriteInt64(v.Long())
	case TagFloat:
		return e.WriteFloat32(v.Float())
	case TagDouble:
		return e.WriteFloat64(v.Double())
	case TagBool:
		return e.WriteBool(v.Bool())
	case TagChar:
		return e.WriteChar(v.Char())
	case TagString:
		return e.WriteString(v.Str())
	case TagEnum:
		return e.WriteEnum(v.Str())
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTag, byte(v.Kind()))
	}
}

// WriteAttribute writes one named attribute: the value's tag (TagNull for null
// values), the name and the value bytes.
func (e *Encoder) WriteAttribute(name string, v Value) error {
	if err := e.WriteTag(v.Kind()); err != nil {
		return err
	}
	if err := e.WriteString(name); err != nil {
		return err
	}
	return e.WriteValue(v)
}

// WriteCustom writes a custom block holding data. Empty data writes nothing.
func (e *Encoder) WriteCustom(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := e.WriteTag(TagCustom); err != nil {
		return err
	}
	return e.WriteBytes(data)
}

// WriteEnd terminates the current sequence
func (e *Encoder) WriteEnd() error {
	return e.WriteTag(TagEnd)
}
