package serializer

import (
	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("serializer")

// Schema is the part of attr.Schema the sio serializer needs
type Schema[T any] interface {
	Name() string
	Marshal(obj *T) ([]byte, error)
	Unmarshal(data []byte, obj *T) error
}

// NewSIOSerializer creates a new serializer using the tagged attribute format
func NewSIOSerializer[T any](schema Schema[T]) ISerializer[T] {
	return &sioSerializerImpl[T]{schema: schema}
}

// sioSerializerImpl implements the ISerializer interface using an attr schema
type sioSerializerImpl[T any] struct {
	schema Schema[T]
}

var _ Schema[struct{}] = (*attr.Schema[struct{}])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (s *sioSerializerImpl[T]) Name() string {
	return "sio"
}

func (s *sioSerializerImpl[T]) Serialize(obj *T) ([]byte, error) {
	return s.schema.Marshal(obj)
}

func (s *sioSerializerImpl[T]) Deserialize(b []byte, obj *T) error {
	if err := s.schema.Unmarshal(b, obj); err != nil {
		Logger.Debugf("%s: decoding %d bytes failed: %v", s.schema.Name(), len(b), err)
		return err
	}
	return nil
}
