package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

// Writer encodes primitive values into a byte sink, big-endian throughout.
// Errors of the underlying sink are returned unchanged.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	dst   io.Writer
	buf   [8]byte
	count int64
}

// NewWriter creates a new Writer on top of dst
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// Count returns the number of bytes written to the sink so far
func (w *Writer) Count() int64 {
	return w.count
}

// write sends p to the sink and tracks the byte count
func (w *Writer) write(p []byte) error {
	n, err := w.dst.Write(p)
	w.count += int64(n)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// --------------------------------------------------------------------------
// Fixed width values
// --------------------------------------------------------------------------

// WriteByte writes a single byte
func (w *Writer) WriteByte(v byte) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

// WriteInt16 writes a big-endian signed 16-bit integer
func (w *Writer) WriteInt16(v int16) error {
	binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
	return w.write(w.buf[:2])
}

// WriteInt32 writes a big-endian signed 32-bit integer
func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write(w.buf[:4])
}

// WriteInt64 writes a big-endian signed 64-bit integer
func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	return w.write(w.buf[:8])
}

// WriteFloat32 writes the raw IEEE-754 bit pattern of v
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteInt32(int32(math.Float32bits(v)))
}

// WriteFloat64 writes the raw IEEE-754 bit pattern of v
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteInt64(int64(math.Float64bits(v)))
}

// WriteBool writes 1 for true and 0 for false
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// WriteChar writes a big-endian UTF-16 code unit
func (w *Writer) WriteChar(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

// --------------------------------------------------------------------------
// Length prefixed values
// --------------------------------------------------------------------------

// WriteBytes writes a length-prefixed byte array.
// A nil slice is written as null (length -1), an empty slice as length 0.
func (w *Writer) WriteBytes(data []byte) error {
	if data == nil {
		return w.WriteInt32(-1)
	}
	if len(data) > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes", ErrLengthLimit, len(data))
	}
	if err := w.WriteInt32(int32(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return w.write(data)
}

// WriteString writes the UTF-8 bytes of s as byte array.
// The empty string is written as an empty array, never as null.
func (w *Writer) WriteString(s string) error {
	if s == "" {
		return w.WriteInt32(0)
	}
	return w.WriteBytes([]byte(s))
}

// WriteNullString writes a null string
func (w *Writer) WriteNullString() error {
	return w.WriteBytes(nil)
}

// WriteEnum writes the symbolic name of an enum variant
func (w *Writer) WriteEnum(name string) error {
	return w.WriteString(name)
}

// WriteLegacyString writes s in the legacy UTF-16 format (code unit count
// followed by two bytes per code unit). If null is set, s is ignored and a
// null string is written.
func (w *Writer) WriteLegacyString(s string, null bool) error {
	if null {
		return w.WriteInt32(-1)
	}
	units := utf16.Encode([]rune(s))
	if len(units) > math.MaxInt32 {
		return fmt.Errorf("%w: %d code units", ErrLengthLimit, len(units))
	}
	if err := w.WriteInt32(int32(len(units))); err != nil {
		return err
	}
	for _, u := range units {
		if err := w.WriteChar(u); err != nil {
			return err
		}
	}
	return nil
}
