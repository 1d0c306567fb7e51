package pstore

import (
	"errors"
	"sync"

	"github.com/ValentinKolb/sio/lib/store"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

type storeImpl struct {
	db   *pebble.DB
	sync bool

	// mu serializes writes, so Update can check for existence first.
	// Reads hold it shared so Close can not pull the database away underneath them.
	mu     sync.RWMutex
	closed bool
}

// Option configures a pebble store
type Option func(o *options)

type options struct {
	pebble *pebble.Options
	sync   bool
}

// WithPebbleOptions sets the options passed to pebble.Open (e.g. an in-memory vfs for tests)
func WithPebbleOptions(opts *pebble.Options) Option {
	return func(o *options) {
		o.pebble = opts
	}
}

// WithSync makes every write wait until it is durable on disk
func WithSync(sync bool) Option {
	return func(o *options) {
		o.sync = sync
	}
}

// NewPebbleStore opens (or creates) a pebble database in dir and returns a store backed by it
func NewPebbleStore(dir string, opts ...Option) (store.IBlobStore, error) {
	o := options{pebble: &pebble.Options{}}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := pebble.Open(dir, o.pebble)
	if err != nil {
		return nil, store.NewError(store.RetCInternalError, "opening pebble: "+err.Error())
	}
	store.Logger.Infof("opened pebble store in %s", dir)
	return &storeImpl{db: db, sync: o.sync}, nil
}

// writeOpts returns the pebble write options of the store
func (s *storeImpl) writeOpts() *pebble.WriteOptions {
	if s.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// internal wraps a pebble error into a store error
func internal(op string, err error) error {
	return store.NewError(store.RetCInternalError, op+": "+err.Error())
}

var errClosed = store.NewError(store.RetCInvalidOperation, "store is closed")

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Create(data []byte) (ksuid.KSUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ksuid.Nil, errClosed
	}

	id, err := ksuid.NewRandom()
	if err != nil {
		return ksuid.Nil, internal("generating id", err)
	}
	if err := s.db.Set(id.Bytes(), data, s.writeOpts()); err != nil {
		return ksuid.Nil, internal("set", err)
	}
	return id, nil
}

func (s *storeImpl) Read(id ksuid.KSUID) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, errClosed
	}

	value, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, internal("get", err)
	}
	defer closer.Close()

	// value is only valid until closer.Close
	return append(make([]byte, 0, len(value)), value...), true, nil
}

func (s *storeImpl) Update(id ksuid.KSUID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}

	_, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return store.NewError(store.RetCNotFound, "id "+id.String()+" not found")
	}
	if err != nil {
		return internal("get", err)
	}
	_ = closer.Close()

	if err := s.db.Set(id.Bytes(), data, s.writeOpts()); err != nil {
		return internal("set", err)
	}
	return nil
}

func (s *storeImpl) Delete(id ksuid.KSUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}

	if err := s.db.Delete(id.Bytes(), s.writeOpts()); err != nil {
		return internal("delete", err)
	}
	return nil
}

func (s *storeImpl) List() ([]ksuid.KSUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, internal("iterate", err)
	}

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			store.Logger.Warningf("skipping foreign key %x in pebble store", iter.Key())
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, internal("iterate", err)
	}
	return ids, nil
}

func (s *storeImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.NewError(store.RetCInvalidOperation, "store is already closed")
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return internal("close", err)
	}
	return nil
}
