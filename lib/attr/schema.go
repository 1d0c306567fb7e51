package attr

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrTrailingData is returned by Unmarshal when bytes follow the end of the sequence
var ErrTrailingData = errors.New("attr: trailing data after end of sequence")

// Field is a registered attribute accessor: the attribute name, its primitive
// kind and the functions moving values between the object and the wire.
type Field[T any] struct {
	// Name correlates the attribute on the wire with this accessor
	Name string
	// Kind is the primitive tag the attribute is written with
	Kind Tag
	// Enum lists the valid variant names (required for TagEnum, must be nil otherwise)
	Enum *EnumType
	// Get returns the current value, Null() if the attribute has no value
	Get func(obj *T) Value
	// Set applies a decoded value. It receives Null() for null attributes.
	Set func(obj *T, v Value) error
}

// FieldInfo describes a registered attribute without its accessor functions
type FieldInfo struct {
	Name string
	Kind Tag
	Enum *EnumType
}

// Descriptor is the type independent view of a schema
type Descriptor interface {
	// Name returns the name of the schema
	Name() string
	// Fields returns the registered attributes in write order
	Fields() []FieldInfo
	// Field returns the registered attribute with the given name
	Field(name string) (FieldInfo, bool)
}

// CustomEncoder is implemented by objects that append a custom block to their attributes
type CustomEncoder interface {
	// EncodeCustom writes the block contents. Writing nothing omits the block.
	EncodeCustom(enc *Encoder) error
}

// CustomDecoder is implemented by objects that read back their custom block
type CustomDecoder interface {
	// DecodeCustom reads the block contents. The decoder ends at the block boundary.
	DecodeCustom(dec *Decoder) error
}

// Schema is the attribute registration table of one object type.
// The registration order is the order attributes are written in; decoding
// correlates attributes by name only.
//
// A schema must be fully registered before it is used. After that it is
// read-only and may be shared between goroutines.
type Schema[T any] struct {
	name   string
	fields []Field[T]
	index  map[string]int

	customEncode func(obj *T, enc *Encoder) error
	customDecode func(obj *T, dec *Decoder) error
}

// NewSchema creates an empty schema for objects of type T
func NewSchema[T any](name string) *Schema[T] {
	return &Schema[T]{
		name:  name,
		index: make(map[string]int),
	}
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// Register adds accessors to the schema. Malformed accessors are rejected with
// a *MalformedAccessorError and none of the given fields is added.
func (s *Schema[T]) Register(fields ...Field[T]) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if err := s.validate(f); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return &MalformedAccessorError{Schema: s.name, Attribute: f.Name, Reason: "duplicate attribute name"}
		}
		seen[f.Name] = struct{}{}
	}

	for _, f := range fields {
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return nil
}

// MustRegister is like Register but panics on malformed accessors.
// It is intended for schemas built in package initialization.
func (s *Schema[T]) MustRegister(fields ...Field[T]) *Schema[T] {
	if err := s.Register(fields...); err != nil {
		panic(err)
	}
	return s
}

// SetCustom installs custom block hooks on the schema. They take precedence
// over CustomEncoder/CustomDecoder implemented by T. Either function may be nil.
func (s *Schema[T]) SetCustom(encode func(obj *T, enc *Encoder) error, decode func(obj *T, dec *Decoder) error) *Schema[T] {
	s.customEncode = encode
	s.customDecode = decode
	return s
}

// validate checks a single accessor against the registration rules
func (s *Schema[T]) validate(f Field[T]) error {
	malformed := func(reason string, args ...any) error {
		return &MalformedAccessorError{Schema: s.name, Attribute: f.Name, Reason: fmt.Sprintf(reason, args...)}
	}

	switch {
	case f.Name == "":
		return malformed("empty attribute name")
	case !f.Kind.IsPrimitive():
		return malformed("unsupported kind %s", f.Kind)
	case f.Get == nil:
		return malformed("missing getter")
	case f.Set == nil:
		return malformed("missing setter")
	case f.Kind == TagEnum && f.Enum == nil:
		return malformed("enum attribute without enum type")
	case f.Kind != TagEnum && f.Enum != nil:
		return malformed("enum type on %s attribute", f.Kind)
	}
	if _, exists := s.index[f.Name]; exists {
		return malformed("duplicate attribute name")
	}
	return nil
}

// --------------------------------------------------------------------------
// Descriptor Methods
// --------------------------------------------------------------------------

func (s *Schema[T]) Name() string {
	return s.name
}

func (s *Schema[T]) Fields() []FieldInfo {
	infos := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		infos[i] = FieldInfo{Name: f.Name, Kind: f.Kind, Enum: f.Enum}
	}
	return infos
}

func (s *Schema[T]) Field(name string) (FieldInfo, bool) {
	f, ok := s.lookup(name)
	if !ok {
		return FieldInfo{}, false
	}
	return FieldInfo{Name: f.Name, Kind: f.Kind, Enum: f.Enum}, true
}

// lookup returns the accessor registered for name
func (s *Schema[T]) lookup(name string) (*Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &s.fields[i], true
}

// --------------------------------------------------------------------------
// Convenience
// --------------------------------------------------------------------------

// Marshal encodes obj into a new byte slice
func (s *Schema[T]) Marshal(obj *T) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(NewEncoder(&buf), obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into obj. data must hold exactly one sequence.
func (s *Schema[T]) Unmarshal(data []byte, obj *T) error {
	dec := NewDecoder(bytes.NewReader(data))
	if err := s.Decode(dec, obj); err != nil {
		return err
	}
	if dec.Count() != int64(len(data)) {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, int64(len(data))-dec.Count())
	}
	return nil
}
