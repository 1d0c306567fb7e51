package serializer

// ISerializer is the interface for all object serializers
type ISerializer[T any] interface {
	// Name returns the short name of the format (sio, json, gob)
	Name() string
	// Serialize serializes an object into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(obj *T) ([]byte, error)
	// Deserialize deserializes a byte array into an object
	// It takes a byte array and a pointer to the object as parameters
	// It returns an error if any
	Deserialize(b []byte, obj *T) error
}

// Factory creates a serializer for objects of type T
type Factory[T any] func() ISerializer[T]

// New returns the serializer with the given name. The sio format needs the
// schema of T; json and gob work on exported struct members.
func New[T any](name string, schema Schema[T]) (ISerializer[T], error) {
	switch name {
	case "sio":
		return NewSIOSerializer(schema), nil
	case "json":
		return NewJSONSerializer[T](), nil
	case "gob":
		return NewGOBSerializer[T](), nil
	default:
		return nil, &UnknownFormatError{Name: name}
	}
}

// UnknownFormatError is returned by New for an unsupported format name
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "invalid serializer " + e.Name + ". must be one of sio, json, gob"
}
