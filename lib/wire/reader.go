package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

// DefaultMaxLength is the default upper bound for a single length-prefixed value (64 MiB).
const DefaultMaxLength = 64 << 20

// discardChunk is the size of the buffer used by Skip
const discardChunk = 4096

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithMaxLength limits the size of a single byte array or string the reader
// will allocate for. Values <= 0 disable the limit.
func WithMaxLength(n int) ReaderOption {
	return func(r *Reader) {
		r.maxLength = n
	}
}

// Reader decodes primitive values from a byte source.
// Every read goes through ReadExact, so a source that delivers fewer bytes
// per call than requested is handled transparently.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src       io.Reader
	buf       [8]byte
	count     int64
	maxLength int
	opts      []ReaderOption
}

// NewReader creates a new Reader on top of src
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:       src,
		maxLength: DefaultMaxLength,
		opts:      opts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Options returns the options the reader was created with, so nested readers
// can be configured the same way.
func (r *Reader) Options() []ReaderOption {
	return r.opts
}

// Count returns the number of bytes consumed from the source so far
func (r *Reader) Count() int64 {
	return r.count
}

// --------------------------------------------------------------------------
// Fixed width values
// --------------------------------------------------------------------------

// fill reads exactly n bytes into the scratch buffer
func (r *Reader) fill(n int) ([]byte, error) {
	got, err := ReadExact(r.src, r.buf[:n])
	r.count += int64(got)
	if err != nil {
		return nil, err
	}
	return r.buf[:n], nil
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt16 reads a big-endian signed 16-bit integer
func (r *Reader) ReadInt16() (int16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer
func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadInt64 reads a big-endian signed 64-bit integer
func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadFloat32 reads an IEEE-754 single from its 32-bit pattern
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// ReadFloat64 reads an IEEE-754 double from its 64-bit pattern
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// ReadBool reads one byte; only the value 1 is true
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// ReadChar reads a big-endian UTF-16 code unit
func (r *Reader) ReadChar() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// --------------------------------------------------------------------------
// Length prefixed values
// --------------------------------------------------------------------------

// ReadLength reads a length prefix and validates it against the reader's limit.
// A return value of -1 denotes null.
func (r *Reader) ReadLength() (int, error) {
	l, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if l < -1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, l)
	}
	if r.maxLength > 0 && int(l) > r.maxLength {
		return 0, fmt.Errorf("%w: %d > %d", ErrLengthLimit, l, r.maxLength)
	}
	return int(l), nil
}

// ReadBytes reads a length-prefixed byte array.
// A length of -1 yields nil, a length of 0 yields a non-nil empty slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	l, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	switch l {
	case -1:
		return nil, nil
	case 0:
		return []byte{}, nil
	}

	data := make([]byte, l)
	n, err := ReadExact(r.src, data)
	r.count += int64(n)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadString reads a UTF-8 string encoded as byte array.
// ok is false if the encoded string was null.
func (r *Reader) ReadString() (s string, ok bool, err error) {
	data, err := r.ReadBytes()
	if err != nil || data == nil {
		return "", false, err
	}
	return string(data), true, nil
}

// ReadEnum reads the symbolic name of an enum variant.
// Mapping the name back to a variant is up to the caller.
func (r *Reader) ReadEnum() (string, bool, error) {
	return r.ReadString()
}

// ReadLegacyString reads a string in the legacy format: a code unit count
// followed by two bytes per UTF-16 code unit. This format is not compatible with
// ReadString and is only provided to migrate old data.
func (r *Reader) ReadLegacyString() (s string, ok bool, err error) {
	l, err := r.ReadLength()
	if err != nil || l == -1 {
		return "", false, err
	}
	if r.maxLength > 0 && l*2 > r.maxLength {
		return "", false, fmt.Errorf("%w: %d code units", ErrLengthLimit, l)
	}

	units := make([]uint16, l)
	for i := range units {
		if units[i], err = r.ReadChar(); err != nil {
			return "", false, err
		}
	}
	return string(utf16.Decode(units)), true, nil
}

// Skip consumes and discards exactly n bytes
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if n <= len(r.buf) {
		_, err := r.fill(n)
		return err
	}

	chunk := make([]byte, min(n, discardChunk))
	for n > 0 {
		want := min(n, len(chunk))
		got, err := ReadExact(r.src, chunk[:want])
		r.count += int64(got)
		if err != nil {
			return err
		}
		n -= got
	}
	return nil
}
