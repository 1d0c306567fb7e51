// Package serializer puts the sio attribute format behind a small generic
// interface shared with Go's json and gob encodings. The object store and the
// bench command work against this interface, so the formats can be swapped
// and compared.
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - sioSerializerImpl: Tagged attribute format of package attr. Needs an
//     explicitly registered schema and produces self-describing output that
//     tolerates unknown attributes.
//
//   - gobSerializerImpl: Go's gob encoding, using reflection on exported members.
//
//   - jsonSerializerImpl: JSON encoding, useful for debugging or interoperability.
//
// Thread Safety:
//
//	All serializer implementations are stateless (the sio serializer only reads
//	its schema) and safe for concurrent use across multiple goroutines.
//
// Usage:
//
//	s := serializer.NewSIOSerializer(userSchema)
//	data, err := s.Serialize(&user)
//	// ... persist data ...
//	var loaded User
//	err = s.Deserialize(data, &loaded)
package serializer
