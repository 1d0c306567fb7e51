package attr

import (
	"errors"
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("attr")

// errNilObject is returned when Encode or Decode is called without an object
var errNilObject = errors.New("attr: nil object")

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Encode writes obj as one attribute sequence: every registered attribute in
// registration order, the custom block if the custom hook produced any output,
// and the end tag.
func (s *Schema[T]) Encode(enc *Encoder, obj *T) (err error) {
	if obj == nil {
		return errNilObject
	}
	start := enc.Count()
	defer func() {
		observeEncode(enc.depth, enc.Count()-start, err)
	}()

	for i := range s.fields {
		f := &s.fields[i]
		v := f.Get(obj)

		if !v.IsNull() {
			if v.Kind() != f.Kind {
				return &MalformedAccessorError{Schema: s.name, Attribute: f.Name, Reason: fmt.Sprintf("getter returned %s, registered as %s", v.Kind(), f.Kind)}
			}
			if f.Kind == TagEnum {
				if _, ok := f.Enum.Ordinal(v.Str()); !ok {
					return &UnknownEnumVariantError{Attribute: f.Name, Enum: f.Enum.TypeName(), Variant: v.Str()}
				}
			}
		}

		if err := enc.WriteAttribute(f.Name, v); err != nil {
			return &AttributeError{Schema: s.name, Attribute: f.Name, Err: err}
		}
	}

	if err := s.encodeCustom(enc, obj); err != nil {
		return err
	}
	return enc.WriteEnd()
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Decode reads one attribute sequence into obj. Attributes are applied in the
// order they appear on the wire, correlated to accessors by name. Attributes
// without a registered accessor are skipped.
//
// On error obj holds whatever the setters applied before the failure and must
// be considered unreliable.
func (s *Schema[T]) Decode(dec *Decoder, obj *T) (err error) {
	if obj == nil {
		return errNilObject
	}
	defer func() {
		observeDecode(dec.depth, err)
	}()

	custom := false
	for {
		tag, err := dec.ReadTag()
		if err != nil {
			return err
		}

		switch {
		case tag == TagEnd:
			return nil

		case tag == TagCustom:
			if custom {
				return ErrDuplicateCustom
			}
			custom = true
			if err := s.decodeCustom(dec, obj); err != nil {
				return err
			}

		case !tag.IsKnown():
			return fmt.Errorf("%w: %d", ErrUnknownTag, byte(tag))

		default:
			if err := s.decodeAttribute(dec, tag, obj); err != nil {
				return err
			}
		}
	}
}

// decodeAttribute reads name and value of a single named attribute and applies it
func (s *Schema[T]) decodeAttribute(dec *Decoder, tag Tag, obj *T) error {
	name, err := dec.ReadName()
	if err != nil {
		return err
	}

	f, ok := s.lookup(name)
	if !ok {
		Logger.Debugf("%s: skipping unknown attribute %q (%s)", s.name, name, tag)
		unknownSkipped.Inc()
		if err := dec.SkipValue(tag); err != nil {
			return &AttributeError{Schema: s.name, Attribute: name, Err: err}
		}
		return nil
	}

	if tag != TagNull && tag != f.Kind {
		return &TypeMismatchError{Schema: s.name, Attribute: name, Expected: f.Kind, Actual: tag}
	}

	v, err := dec.ReadValue(tag)
	if err != nil {
		return &AttributeError{Schema: s.name, Attribute: name, Err: err}
	}

	if tag == TagEnum && !v.IsNull() {
		if _, ok := f.Enum.Ordinal(v.Str()); !ok {
			return &UnknownEnumVariantError{Attribute: name, Enum: f.Enum.TypeName(), Variant: v.Str()}
		}
	}

	if err := f.Set(obj, v); err != nil {
		return &AttributeError{Schema: s.name, Attribute: name, Err: err}
	}
	return nil
}
