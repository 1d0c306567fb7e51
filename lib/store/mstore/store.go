package mstore

import (
	"sync/atomic"

	"github.com/ValentinKolb/sio/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/segmentio/ksuid"
)

type storeImpl struct {
	data   *xsync.MapOf[ksuid.KSUID, []byte]
	closed atomic.Bool
}

// NewMemoryStore creates a new in-memory store instance.
// All data is lost when the process exits.
func NewMemoryStore() store.IBlobStore {
	return &storeImpl{
		data: xsync.NewMapOf[ksuid.KSUID, []byte](),
	}
}

// checkOpen returns an error once the store was closed
func (s *storeImpl) checkOpen() error {
	if s.closed.Load() {
		return store.NewError(store.RetCInvalidOperation, "store is closed")
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Create(data []byte) (ksuid.KSUID, error) {
	if err := s.checkOpen(); err != nil {
		return ksuid.Nil, err
	}
	id, err := ksuid.NewRandom()
	if err != nil {
		return ksuid.Nil, store.NewError(store.RetCInternalError, err.Error())
	}
	s.data.Store(id, clone(data))
	return id, nil
}

func (s *storeImpl) Read(id ksuid.KSUID) ([]byte, bool, error) {
	if err := s.checkOpen(); err != nil {
		return nil, false, err
	}
	data, ok := s.data.Load(id)
	if !ok {
		return nil, false, nil
	}
	return clone(data), true, nil
}

func (s *storeImpl) Update(id ksuid.KSUID, data []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	_, ok := s.data.Compute(id, func(old []byte, loaded bool) ([]byte, bool) {
		if !loaded {
			// nothing to update, do not create the entry
			return nil, true
		}
		return clone(data), false
	})
	if !ok {
		return store.NewError(store.RetCNotFound, "id "+id.String()+" not found")
	}
	return nil
}

func (s *storeImpl) Delete(id ksuid.KSUID) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.data.Delete(id)
	return nil
}

func (s *storeImpl) List() ([]ksuid.KSUID, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	ids := make([]ksuid.KSUID, 0, s.data.Size())
	s.data.Range(func(id ksuid.KSUID, _ []byte) bool {
		ids = append(ids, id)
		return true
	})
	ksuid.Sort(ids)
	return ids, nil
}

func (s *storeImpl) Close() error {
	if s.closed.Swap(true) {
		return store.NewError(store.RetCInvalidOperation, "store is already closed")
	}
	s.data.Clear()
	return nil
}

// clone copies b so callers can not modify stored data. nil stays nil.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
