package attr

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
)

// Value is either null or exactly one primitive value. The zero Value is null.
//
// Floats are kept as their raw bit pattern, so NaN payloads and signed zeros
// survive a round trip unchanged.
type Value struct {
	kind Tag    // TagNull or a primitive tag
	bits uint64 // integers, booleans, chars and float bit patterns
	str  string // strings and enum names
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// Null returns the null value
func Null() Value { return Value{kind: TagNull} }

func Byte(v byte) Value { return Value{kind: TagByte, bits: uint64(v)} }
func Short(v int16) Value { return Value{kind: TagShort, bits: uint64(v)} }
func Int(v int32) Value { return Value{kind: TagInt, bits: uint64(v)} }
func Long(v int64) Value { return Value{kind: TagLong, bits: uint64(v)} }
func Float(v float32) Value { return Value{kind: TagFloat, bits: uint64(math.Float32bits(v))} }
func Double(v float64) Value { return Value{kind: TagDouble, bits: math.Float64bits(v)} }
func Char(v uint16) Value { return Value{kind: TagChar, bits: uint64(v)} }
func String(v string) Value { return Value{kind: TagString, str: v} }
func Enum(name string) Value { return Value{kind: TagEnum, str: name} }
func Bool(v bool) Value {
	if v {
		return Value{kind: TagBool, bits: 1}
	}
	return Value{kind: TagBool}
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Kind returns the tag of the value, TagNull for null
func (v Value) Kind() Tag {
	if v.kind == TagEnd {
		return TagNull
	}
	return v.kind
}

// IsNull reports whether v carries no value
func (v Value) IsNull() bool {
	return v.Kind() == TagNull
}

// The typed getters below return the zero value of their type if v holds a
// different kind.

func (v Value) Byte() byte {
	if v.kind != TagByte {
		return 0
	}
	return byte(v.bits)
}

func (v Value) Short() int16 {
	if v.kind != TagShort {
		return 0
	}
	return int16(v.bits)
}

func (v Value) Int() int32 {
	if v.kind != TagInt {
		return 0
	}
	return int32(v.bits)
}

func (v Value) Long() int64 {
	if v.kind != TagLong {
		return 0
	}
	return int64(v.bits)
}

func (v Value) Float() float32 {
	if v.kind != TagFloat {
		return 0
	}
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) Double() float64 {
	if v.kind != TagDouble {
		return 0
	}
	return math.Float64frombits(v.bits)
}

func (v Value) Bool() bool {
	return v.kind == TagBool && v.bits == 1
}

func (v Value) Char() uint16 {
	if v.kind != TagChar {
		return 0
	}
	return uint16(v.bits)
}

// Str returns the string of a TagString value or the name of a TagEnum value
func (v Value) Str() string {
	if v.kind != TagString && v.kind != TagEnum {
		return ""
	}
	return v.str
}

// Equal reports whether v and o have the same kind and the same bits.
// Two NaN floats with identical bit patterns are equal.
func (v Value) Equal(o Value) bool {
	return v.Kind() == o.Kind() && v.bits == o.bits && v.str == o.str
}

// String formats the value for humans
func (v Value) String() string {
	switch v.Kind() {
	case TagNull:
		return "null"
	case TagByte:
		return strconv.Itoa(int(v.Byte()))
	case TagShort:
		return strconv.Itoa(int(v.Short()))
	case TagInt:
		return strconv.Itoa(int(v.Int()))
	case TagLong:
		return strconv.FormatInt(v.Long(), 10)
	case TagFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case TagDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case TagBool:
		return strconv.FormatBool(v.Bool())
	case TagChar:
		return strconv.Quote(string(utf16.Decode([]uint16{v.Char()})))
	case TagString:
		return strconv.Quote(v.str)
	case TagEnum:
		return v.str
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}
