package attr

import (
	"golang.org/x/exp/constraints"
)

// Scalar lists the Go types that map directly to a primitive kind:
//
//	byte    -> TagByte
//	int16   -> TagShort
//	int32   -> TagInt
//	int64   -> TagLong
//	float32 -> TagFloat
//	float64 -> TagDouble
//	bool    -> TagBool
//	uint16  -> TagChar
//	string  -> TagString
type Scalar interface {
	byte | int16 | int32 | int64 | float32 | float64 | bool | uint16 | string
}

// kindOf returns the tag matching the scalar type V
func kindOf[V Scalar]() Tag {
	var zero V
	switch any(zero).(type) {
	case byte:
		return TagByte
	case int16:
		return TagShort
	case int32:
		return TagInt
	case int64:
		return TagLong
	case float32:
		return TagFloat
	case float64:
		return TagDouble
	case bool:
		return TagBool
	case uint16:
		return TagChar
	case string:
		return TagString
	default:
		return TagEnd
	}
}

// toValue wraps a scalar into a Value
func toValue[V Scalar](v V) Value {
	switch x := any(v).(type) {
	case byte:
		return Byte(x)
	case int16:
		return Short(x)
	case int32:
		return Int(x)
	case int64:
		return Long(x)
	case float32:
		return Float(x)
	case float64:
		return Double(x)
	case bool:
		return Bool(x)
	case uint16:
		return Char(x)
	case string:
		return String(x)
	default:
		return Null()
	}
}

// fromValue extracts a scalar from a Value. Null yields the zero value.
func fromValue[V Scalar](v Value) V {
	var out V
	switch p := any(&out).(type) {
	case *byte:
		*p = v.Byte()
	case *int16:
		*p = v.Short()
	case *int32:
		*p = v.Int()
	case *int64:
		*p = v.Long()
	case *float32:
		*p = v.Float()
	case *float64:
		*p = v.Double()
	case *bool:
		*p = v.Bool()
	case *uint16:
		*p = v.Char()
	case *string:
		*p = v.Str()
	}
	return out
}

// Bind creates an accessor for a struct member of a scalar type.
// The kind is derived from V. A null attribute resets the member to its zero value.
//
//	attr.Bind("id", func(u *User) *int32 { return &u.ID })
func Bind[T any, V Scalar](name string, ref func(obj *T) *V) Field[T] {
	return Field[T]{
		Name: name,
		Kind: kindOf[V](),
		Get: func(obj *T) Value {
			return toValue(*ref(obj))
		},
		Set: func(obj *T, v Value) error {
			*ref(obj) = fromValue[V](v)
			return nil
		},
	}
}

// BindPtr creates an accessor for an optional struct member. A nil pointer is
// written as null, and a null attribute sets the member to nil.
//
//	attr.BindPtr("nickname", func(u *User) **string { return &u.Nickname })
func BindPtr[T any, V Scalar](name string, ref func(obj *T) **V) Field[T] {
	return Field[T]{
		Name: name,
		Kind: kindOf[V](),
		Get: func(obj *T) Value {
			p := *ref(obj)
			if p == nil {
				return Null()
			}
			return toValue(*p)
		},
		Set: func(obj *T, v Value) error {
			if v.IsNull() {
				*ref(obj) = nil
				return nil
			}
			x := fromValue[V](v)
			*ref(obj) = &x
			return nil
		},
	}
}

// BindEnum creates an accessor for an integer-backed enumeration. The member
// holds the ordinal, the wire carries the variant name of et.
//
//	attr.BindEnum("state", stateEnum, func(u *User) *State { return &u.State })
func BindEnum[T any, E constraints.Integer](name string, et *EnumType, ref func(obj *T) *E) Field[T] {
	return Field[T]{
		Name: name,
		Kind: TagEnum,
		Enum: et,
		Get: func(obj *T) Value {
			n, ok := et.Name(int(*ref(obj)))
			if !ok {
				// rejected by Encode as unknown variant
				return Enum("")
			}
			return Enum(n)
		},
		Set: func(obj *T, v Value) error {
			if v.IsNull() {
				*ref(obj) = 0
				return nil
			}
			o, ok := et.Ordinal(v.Str())
			if !ok {
				return &UnknownEnumVariantError{Attribute: name, Enum: et.TypeName(), Variant: v.Str()}
			}
			*ref(obj) = E(o)
			return nil
		},
	}
}
