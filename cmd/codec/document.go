package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/BurntSushi/toml"
	"github.com/ValentinKolb/sio/lib/attr"
)

// Document is the TOML form of an attribute sequence:
//
//	schema = "profile"        # optional, checked against the registry
//
//	[[attribute]]
//	name  = "id"
//	kind  = "int"
//	value = 42
//
//	[[attribute]]
//	name = "nickname"
//	kind = "null"
//
//	[nested]                  # custom block holding another sequence
//	[[nested.attribute]]
//	...
//
// Instead of a nested document the custom block can be given as hex string
// with custom = "0a0b0c".
type Document struct {
	Schema     string      `toml:"schema,omitempty"`
	Attributes []Attribute `toml:"attribute"`
	Custom     string      `toml:"custom,omitempty"`
	Nested     *Document   `toml:"nested,omitempty"`
}

// Attribute is one entry of a Document. Value holds a TOML integer, float,
// boolean or string depending on Kind and is absent for null attributes.
type Attribute struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Value any    `toml:"value"`
}

// ParseDocument decodes a TOML document. Unknown keys are rejected.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in document: %v", undecoded)
	}
	return &doc, nil
}

// Marshal renders the document as TOML
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --------------------------------------------------------------------------
// Document -> Sequence
// --------------------------------------------------------------------------

// Sequence converts the document into an attribute sequence
func (d *Document) Sequence() (*attr.Sequence, error) {
	seq := &attr.Sequence{}
	for i, a := range d.Attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("attribute %d: missing name", i)
		}
		v, err := toValue(a)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", a.Name, err)
		}
		seq.Add(a.Name, v)
	}

	switch {
	case d.Custom != "" && d.Nested != nil:
		return nil, fmt.Errorf("custom and nested are mutually exclusive")
	case d.Custom != "":
		custom, err := hex.DecodeString(d.Custom)
		if err != nil {
			return nil, fmt.Errorf("custom: %w", err)
		}
		seq.Custom = custom
	case d.Nested != nil:
		nested, err := d.Nested.Encode()
		if err != nil {
			return nil, fmt.Errorf("nested: %w", err)
		}
		seq.Custom = nested
	}
	return seq, nil
}

// Encode converts the document into its binary encoding
func (d *Document) Encode() ([]byte, error) {
	seq, err := d.Sequence()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := attr.WriteSequence(attr.NewEncoder(&buf), seq); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toValue converts the TOML value of an attribute to the kind it declares
func toValue(a Attribute) (attr.Value, error) {
	if a.Kind == "null" {
		if a.Value != nil {
			return attr.Null(), fmt.Errorf("null attribute with value")
		}
		return attr.Null(), nil
	}
	kind, err := attr.ParseTag(a.Kind)
	if err != nil {
		return attr.Null(), err
	}
	if a.Value == nil {
		return attr.Null(), fmt.Errorf("missing value for %s attribute", kind)
	}

	switch kind {
	case attr.TagByte:
		n, err := integer(a.Value, 0, math.MaxUint8)
		return attr.Byte(byte(n)), err
	case attr.TagShort:
		n, err := integer(a.Value, math.MinInt16, math.MaxInt16)
		return attr.Short(int16(n)), err
	case attr.TagInt:
		n, err := integer(a.Value, math.MinInt32, math.MaxInt32)
		return attr.Int(int32(n)), err
	case attr.TagLong:
		n, err := integer(a.Value, math.MinInt64, math.MaxInt64)
		return attr.Long(n), err
	case attr.TagFloat:
		f, err := float(a.Value)
		return attr.Float(float32(f)), err
	case attr.TagDouble:
		f, err := float(a.Value)
		return attr.Double(f), err
	case attr.TagBool:
		b, ok := a.Value.(bool)
		if !ok {
			return attr.Null(), fmt.Errorf("expected boolean, got %T", a.Value)
		}
		return attr.Bool(b), nil
	case attr.TagChar:
		return char(a.Value)
	case attr.TagString, attr.TagEnum:
		s, ok := a.Value.(string)
		if !ok {
			return attr.Null(), fmt.Errorf("expected string, got %T", a.Value)
		}
		if kind == attr.TagEnum {
			return attr.Enum(s), nil
		}
		return attr.String(s), nil
	default:
		return attr.Null(), fmt.Errorf("unsupported kind %s", kind)
	}
}

// integer checks that v is a TOML integer within [lo, hi]
func integer(v any, lo, hi int64) (int64, error) {
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

// float accepts TOML floats (including nan and inf) and integers
func float(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case int64:
		return float64(f), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}

// char accepts a string holding a single UTF-16 code unit or an integer code
func char(v any) (attr.Value, error) {
	switch c := v.(type) {
	case int64:
		if c < 0 || c > math.MaxUint16 {
			return attr.Null(), fmt.Errorf("char code %d out of range", c)
		}
		return attr.Char(uint16(c)), nil
	case string:
		units := utf16.Encode([]rune(c))
		if len(units) != 1 {
			return attr.Null(), fmt.Errorf("char must be a single UTF-16 code unit, got %q", c)
		}
		return attr.Char(units[0]), nil
	default:
		return attr.Null(), fmt.Errorf("expected string or integer, got %T", v)
	}
}

// --------------------------------------------------------------------------
// Sequence -> Document
// --------------------------------------------------------------------------

// FromSequence converts a decoded sequence into a document. With recursive set
// the custom block is rendered as nested document if it holds a valid sequence,
// otherwise (and without recursive) it is kept as hex string.
func FromSequence(seq *attr.Sequence, recursive bool) *Document {
	doc := &Document{Attributes: make([]Attribute, 0, len(seq.Attributes))}
	for _, a := range seq.Attributes {
		doc.Attributes = append(doc.Attributes, Attribute{
			Name:  a.Name,
			Kind:  a.Value.Kind().String(),
			Value: fromValue(a.Value),
		})
	}

	if len(seq.Custom) == 0 {
		return doc
	}
	if recursive {
		if nested, err := seq.Nested(); err == nil {
			doc.Nested = FromSequence(nested, true)
			return doc
		}
	}
	doc.Custom = hex.EncodeToString(seq.Custom)
	return doc
}

// fromValue returns the TOML representation of v
func fromValue(v attr.Value) any {
	switch v.Kind() {
	case attr.TagByte:
		return int64(v.Byte())
	case attr.TagShort:
		return int64(v.Short())
	case attr.TagInt:
		return int64(v.Int())
	case attr.TagLong:
		return v.Long()
	case attr.TagFloat:
		return float64(v.Float())
	case attr.TagDouble:
		return v.Double()
	case attr.TagBool:
		return v.Bool()
	case attr.TagChar:
		// lone surrogates can not be represented as TOML string
		if utf16.IsSurrogate(rune(v.Char())) {
			return int64(v.Char())
		}
		return string(rune(v.Char()))
	case attr.TagString, attr.TagEnum:
		return v.Str()
	default:
		return nil
	}
}
