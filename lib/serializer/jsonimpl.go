package serializer

import (
	"encoding/json"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer[T any]() ISerializer[T] {
	return &jsonSerializerImpl[T]{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl[T any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl[T]) Name() string {
	return "json"
}

func (j jsonSerializerImpl[T]) Serialize(obj *T) ([]byte, error) {
	return json.Marshal(obj)
}

func (j jsonSerializerImpl[T]) Deserialize(b []byte, obj *T) error {
	return json.Unmarshal(b, obj)
}
