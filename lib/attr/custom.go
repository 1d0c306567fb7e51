package attr

import (
	"bytes"
	"fmt"
)

// customName is used as attribute name in errors concerning the custom block
const customName = "<custom>"

// encodeCustom runs the custom hook against a nested encoder backed by its own
// buffer. The block is only written if the hook produced output.
func (s *Schema[T]) encodeCustom(enc *Encoder, obj *T) error {
	hook := s.customEncode
	if hook == nil {
		ce, ok := any(obj).(CustomEncoder)
		if !ok {
			return nil
		}
		hook = func(_ *T, nested *Encoder) error { return ce.EncodeCustom(nested) }
	}

	var buf bytes.Buffer
	nested, err := enc.nested(&buf)
	if err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}
	if err := hook(obj, nested); err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}

	if buf.Len() == 0 {
		return nil
	}
	customBlocks.Inc()
	if err := enc.WriteCustom(buf.Bytes()); err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}
	return nil
}

// decodeCustom reads the length of a custom block and hands a decoder confined
// to exactly that many bytes to the custom hook. Whatever the hook leaves
// unread is discarded afterwards, so the outer decoder continues directly
// behind the block.
func (s *Schema[T]) decodeCustom(dec *Decoder, obj *T) error {
	l, err := dec.ReadLength()
	if err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}
	// a null block is treated like an empty one
	if l < 0 {
		l = 0
	}
	customBlocks.Inc()

	nested, section, err := dec.section(l)
	if err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}

	hook := s.customDecode
	if hook == nil {
		if cd, ok := any(obj).(CustomDecoder); ok {
			hook = func(_ *T, nested *Decoder) error { return cd.DecodeCustom(nested) }
		}
	}

	if hook == nil {
		Logger.Debugf("%s: ignoring custom block of %d bytes", s.name, l)
	} else if err := hook(obj, nested); err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: err}
	}

	if rest := section.Remaining(); rest > 0 && hook != nil {
		Logger.Debugf("%s: custom hook left %d of %d bytes unread", s.name, rest, l)
	}
	if err := section.Close(); err != nil {
		return &AttributeError{Schema: s.name, Attribute: customName, Err: fmt.Errorf("discarding custom block: %w", err)}
	}
	return nil
}
