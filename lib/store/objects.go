package store

import (
	"github.com/ValentinKolb/sio/lib/serializer"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/segmentio/ksuid"
)

var Logger = logger.GetLogger("store")

// Save serializes obj and stores it under a new id
func Save[T any](s IBlobStore, ser serializer.ISerializer[T], obj *T) (ksuid.KSUID, error) {
	data, err := ser.Serialize(obj)
	if err != nil {
		return ksuid.Nil, err
	}
	id, err := s.Create(data)
	if err != nil {
		return ksuid.Nil, err
	}
	Logger.Debugf("saved %s object %s (%d bytes)", ser.Name(), id, len(data))
	return id, nil
}

// Replace serializes obj and overwrites the object stored under id
func Replace[T any](s IBlobStore, ser serializer.ISerializer[T], id ksuid.KSUID, obj *T) error {
	data, err := ser.Serialize(obj)
	if err != nil {
		return err
	}
	return s.Update(id, data)
}

// Load reads the object stored under id into obj. The boolean return value
// indicates whether the id was found; obj is untouched if it was not.
func Load[T any](s IBlobStore, ser serializer.ISerializer[T], id ksuid.KSUID, obj *T) (bool, error) {
	data, ok, err := s.Read(id)
	if err != nil || !ok {
		return ok, err
	}
	if err := ser.Deserialize(data, obj); err != nil {
		return true, err
	}
	return true, nil
}
