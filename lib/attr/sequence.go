package attr

import (
	"bytes"
	"fmt"
)

// Attribute is one named value of a sequence
type Attribute struct {
	Name  string
	Value Value
}

// Sequence is the schema-less view of one encoded object: its attributes in
// wire order and the raw contents of its custom block. It is used to inspect
// or build streams without a registered schema.
type Sequence struct {
	Attributes []Attribute
	// Custom holds the custom block contents; nil or empty if there is none
	Custom []byte
}

// Get returns the value of the first attribute with the given name
func (s *Sequence) Get(name string) (Value, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return Null(), false
}

// Add appends an attribute and returns the sequence
func (s *Sequence) Add(name string, v Value) *Sequence {
	s.Attributes = append(s.Attributes, Attribute{Name: name, Value: v})
	return s
}

// Nested parses the custom block as a nested sequence
func (s *Sequence) Nested() (*Sequence, error) {
	if len(s.Custom) == 0 {
		return nil, fmt.Errorf("attr: sequence has no custom block")
	}
	dec := NewDecoder(bytes.NewReader(s.Custom))
	nested, err := ReadSequence(dec)
	if err != nil {
		return nil, err
	}
	if rest := int64(len(s.Custom)) - dec.Count(); rest != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, rest)
	}
	return nested, nil
}

// WriteSequence encodes seq: its attributes in order, the custom block if it
// is not empty and the end tag.
func WriteSequence(enc *Encoder, seq *Sequence) error {
	for _, a := range seq.Attributes {
		if a.Value.Kind() != TagNull && !a.Value.Kind().IsPrimitive() {
			return &MalformedAccessorError{Schema: "sequence", Attribute: a.Name, Reason: fmt.Sprintf("unsupported kind %s", a.Value.Kind())}
		}
		if err := enc.WriteAttribute(a.Name, a.Value); err != nil {
			return &AttributeError{Schema: "sequence", Attribute: a.Name, Err: err}
		}
	}
	if err := enc.WriteCustom(seq.Custom); err != nil {
		return &AttributeError{Schema: "sequence", Attribute: customName, Err: err}
	}
	return enc.WriteEnd()
}

// ReadSequence decodes one sequence without a schema. Every attribute is kept,
// the custom block is returned as raw bytes.
func ReadSequence(dec *Decoder) (*Sequence, error) {
	seq := &Sequence{}
	custom := false
	for {
		tag, err := dec.ReadTag()
		if err != nil {
			return nil, err
		}

		switch {
		case tag == TagEnd:
			return seq, nil

		case tag == TagCustom:
			if custom {
				return nil, ErrDuplicateCustom
			}
			custom = true
			data, err := dec.ReadBytes()
			if err != nil {
				return nil, &AttributeError{Schema: "sequence", Attribute: customName, Err: err}
			}
			seq.Custom = data

		case !tag.IsKnown():
			return nil, fmt.Errorf("%w: %d", ErrUnknownTag, byte(tag))

		default:
			name, err := dec.ReadName()
			if err != nil {
				return nil, err
			}
			v, err := dec.ReadValue(tag)
			if err != nil {
				return nil, &AttributeError{Schema: "sequence", Attribute: name, Err: err}
			}
			seq.Attributes = append(seq.Attributes, Attribute{Name: name, Value: v})
		}
	}
}
