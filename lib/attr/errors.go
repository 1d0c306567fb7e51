package attr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTag is returned for a tag byte the protocol does not define.
	// The width of its value is unknown, so decoding cannot continue.
	ErrUnknownTag = errors.New("attr: unknown tag")
	// ErrDuplicateCustom is returned when a sequence holds more than one custom block
	ErrDuplicateCustom = errors.New("attr: duplicate custom block")
	// ErrNullName is returned when an attribute name is encoded as null
	ErrNullName = errors.New("attr: null attribute name")
)

// TypeMismatchError is returned when the tag of an attribute on the wire does
// not match the kind its accessor was registered with.
type TypeMismatchError struct {
	Schema    string
	Attribute string
	Expected  Tag
	Actual    Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attr: %s.%s: type mismatch: expected %s, got %s", e.Schema, e.Attribute, e.Expected, e.Actual)
}

// UnknownEnumVariantError is returned when a decoded enum name matches no variant
type UnknownEnumVariantError struct {
	Attribute string
	Enum      string
	Variant   string
}

func (e *UnknownEnumVariantError) Error() string {
	return fmt.Sprintf("attr: %s: unknown variant %q of enum %s", e.Attribute, e.Variant, e.Enum)
}

// MalformedAccessorError reports an accessor that cannot be used.
// It is a programming error and is reported at registration time whenever possible.
type MalformedAccessorError struct {
	Schema    string
	Attribute string
	Reason    string
}

func (e *MalformedAccessorError) Error() string {
	return fmt.Sprintf("attr: %s.%s: malformed accessor: %s", e.Schema, e.Attribute, e.Reason)
}

// AttributeError adds the attribute being processed to an underlying error
// (end of input, source or sink failures, setter errors).
type AttributeError struct {
	Schema    string
	Attribute string
	Err       error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attr: %s.%s: %v", e.Schema, e.Attribute, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
