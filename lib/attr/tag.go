package attr

import "fmt"

// Tag identifies the wire kind of one attribute. It is written as a single
// byte in front of every attribute.
type Tag byte

// Values below TagCustom are reserved for primitive kinds, so new primitives
// can be added without colliding with the custom block.
const (
	TagEnd    Tag = 0  // terminates a sequence, carries no name
	TagNull   Tag = 1  // attribute without value
	TagByte   Tag = 2  // 1 byte
	TagShort  Tag = 3  // 2 bytes
	TagInt    Tag = 4  // 4 bytes
	TagLong   Tag = 5  // 8 bytes
	TagFloat  Tag = 6  // 4 bytes, IEEE-754 single
	TagDouble Tag = 7  // 8 bytes, IEEE-754 double
	TagBool   Tag = 8  // 1 byte
	TagChar   Tag = 9  // 2 bytes, UTF-16 code unit
	TagString Tag = 10 // length-prefixed UTF-8
	TagEnum   Tag = 11 // variant name as string

	TagCustom Tag = 50 // length-prefixed opaque region, carries no name
)

// IsPrimitive reports whether t carries a value of a primitive kind
func (t Tag) IsPrimitive() bool {
	return t >= TagByte && t <= TagEnum
}

// IsKnown reports whether t is one of the tags defined by the protocol
func (t Tag) IsKnown() bool {
	return t <= TagEnum || t == TagCustom
}

// HasName reports whether the tag is followed by an attribute name
func (t Tag) HasName() bool {
	return t != TagEnd && t != TagCustom
}

// fixedWidth returns the number of value bytes for fixed width kinds.
// ok is false for length-prefixed kinds and tags without value.
func (t Tag) fixedWidth() (n int, ok bool) {
	switch t {
	case TagByte, TagBool:
		return 1, true
	case TagShort, TagChar:
		return 2, true
	case TagInt, TagFloat:
		return 4, true
	case TagLong, TagDouble:
		return 8, true
	default:
		return 0, false
	}
}

func (t Tag) String() string {
	switch t {
	case TagEnd:
		return "end"
	case TagNull:
		return "null"
	case TagByte:
		return "byte"
	case TagShort:
		return "short"
	case TagInt:
		return "int"
	case TagLong:
		return "long"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagBool:
		return "bool"
	case TagChar:
		return "char"
	case TagString:
		return "string"
	case TagEnum:
		return "enum"
	case TagCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// ParseTag converts the name of a primitive kind (as returned by Tag.String) to a Tag
func ParseTag(name string) (Tag, error) {
	for t := TagByte; t <= TagEnum; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return TagEnd, fmt.Errorf("unknown attribute kind: %s", name)
}
