package testing

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/sio/lib/attr"
	"github.com/ValentinKolb/sio/lib/serializer"
	"github.com/ValentinKolb/sio/lib/store"
	"github.com/segmentio/ksuid"
)

// RunBlobStoreTests runs a comprehensive test suite for an IBlobStore implementation.
// Every test gets a fresh store from factory and closes it afterwards.
func RunBlobStoreTests(t *testing.T, name string, factory store.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Create&Read", func(t *testing.T) {
			testCreateRead(t, open(t, factory))
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, open(t, factory))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, open(t, factory))
		})

		t.Run("List", func(t *testing.T) {
			testList(t, open(t, factory))
		})

		t.Run("CopySemantics", func(t *testing.T) {
			testCopySemantics(t, open(t, factory))
		})

		t.Run("Concurrent", func(t *testing.T) {
			testConcurrent(t, open(t, factory))
		})

		t.Run("Objects", func(t *testing.T) {
			testObjects(t, open(t, factory))
		})

		t.Run("Close", func(t *testing.T) {
			testClose(t, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// open creates a store and registers its Close as cleanup
func open(t testing.TB, factory store.Factory) store.IBlobStore {
	s, err := factory()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// mustCreate stores data and fails the test on error
func mustCreate(t testing.TB, s store.IBlobStore, data []byte) ksuid.KSUID {
	id, err := s.Create(data)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return id
}

// requireCode checks that err is a *store.Error with the given code
func requireCode(t testing.TB, err error, code store.RetCode) {
	t.Helper()
	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error with code %s, got %v", code, err)
	}
	if storeErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, storeErr.Code, storeErr.Msg)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateRead(t *testing.T, s store.IBlobStore) {
	data := []byte{10, 0, 0, 0, 4, 'n', 'a', 'm', 'e', 0}
	id := mustCreate(t, s, data)
	if id.IsNil() {
		t.Fatal("Create returned the nil id")
	}

	got, ok, err := s.Read(id)
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v, %v", got, ok, err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read() = %v, want %v", got, data)
	}

	// unknown ids are not an error
	if _, ok, err := s.Read(ksuid.New()); ok || err != nil {
		t.Errorf("Read(unknown) = %v, %v", ok, err)
	}

	// empty objects are allowed
	empty := mustCreate(t, s, []byte{})
	if got, ok, err := s.Read(empty); err != nil || !ok || len(got) != 0 {
		t.Errorf("Read(empty) = %v, %v, %v", got, ok, err)
	}
}

func testUpdate(t *testing.T, s store.IBlobStore) {
	id := mustCreate(t, s, []byte("first"))

	if err := s.Update(id, []byte("second")); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got, _, _ := s.Read(id); string(got) != "second" {
		t.Errorf("Read() after Update = %q, want %q", got, "second")
	}

	missing := ksuid.New()
	err := s.Update(missing, []byte("x"))
	requireCode(t, err, store.RetCNotFound)
	if !store.IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if !errors.Is(err, &store.Error{Code: store.RetCNotFound}) {
		t.Errorf("errors.Is does not match the return code")
	}

	// a failed update must not create the object
	if _, ok, _ := s.Read(missing); ok {
		t.Error("Update of an unknown id created it")
	}
}

func testDelete(t *testing.T, s store.IBlobStore) {
	id := mustCreate(t, s, []byte("value"))

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Read(id); ok {
		t.Error("object still readable after Delete")
	}

	// deleting twice is fine
	if err := s.Delete(id); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func testList(t *testing.T, s store.IBlobStore) {
	ids, err := s.List()
	if err != nil || len(ids) != 0 {
		t.Fatalf("List() on empty store = %v, %v", ids, err)
	}

	created := make(map[ksuid.KSUID]bool)
	for i := 0; i < 10; i++ {
		created[mustCreate(t, s, []byte(fmt.Sprintf("object-%d", i)))] = true
	}
	deleted := mustCreate(t, s, []byte("deleted"))
	if err := s.Delete(deleted); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ids, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != len(created) {
		t.Fatalf("List() returned %d ids, want %d", len(ids), len(created))
	}
	for i, id := range ids {
		if !created[id] {
			t.Errorf("List() returned unknown id %s", id)
		}
		if i > 0 && ksuid.Compare(ids[i-1], id) >= 0 {
			t.Errorf("List() not sorted at %d", i)
		}
	}
}

func testCopySemantics(t *testing.T, s store.IBlobStore) {
	data := []byte("original")
	id := mustCreate(t, s, data)
	data[0] = 'X'

	got, _, _ := s.Read(id)
	if string(got) != "original" {
		t.Fatalf("stored data changed with the input buffer: %q", got)
	}

	got[0] = 'Y'
	again, _, _ := s.Read(id)
	if string(again) != "original" {
		t.Errorf("stored data changed with the returned buffer: %q", again)
	}
}

func testConcurrent(t *testing.T, s store.IBlobStore) {
	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				value := []byte(fmt.Sprintf("%d-%d", w, i))
				id, err := s.Create(value)
				if err != nil {
					errs <- err
					return
				}
				got, ok, err := s.Read(id)
				if err != nil || !ok || !bytes.Equal(got, value) {
					errs <- fmt.Errorf("read back %s: %q, %v, %v", id, got, ok, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != workers*perWorker {
		t.Errorf("List() returned %d ids, want %d", len(ids), workers*perWorker)
	}
}

// document is the object used to test the typed helpers
type document struct {
	Title    string
	Revision int32
}

var documentSchema = attr.NewSchema[document]("document").MustRegister(
	attr.Bind("title", func(d *document) *string { return &d.Title }),
	attr.Bind("revision", func(d *document) *int32 { return &d.Revision }),
)

func testObjects(t *testing.T, s store.IBlobStore) {
	ser := serializer.NewSIOSerializer[document](documentSchema)

	id, err := store.Save(s, ser, &document{Title: "draft", Revision: 1})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Replace(s, ser, id, &document{Title: "final", Revision: 2}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	var loaded document
	ok, err := store.Load(s, ser, id, &loaded)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if loaded != (document{Title: "final", Revision: 2}) {
		t.Errorf("Load() = %+v", loaded)
	}

	var untouched document
	if ok, err := store.Load(s, ser, ksuid.New(), &untouched); ok || err != nil {
		t.Errorf("Load(unknown) = %v, %v", ok, err)
	}

	// stored bytes that are not a valid sequence are reported by the serializer
	broken := mustCreate(t, s, []byte{byte(attr.TagString)})
	if _, err := store.Load(s, ser, broken, &loaded); err == nil {
		t.Error("Load of a truncated object succeeded")
	}
}

func testClose(t *testing.T, factory store.Factory) {
	s, err := factory()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	id := mustCreate(t, s, []byte("value"))

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err = s.Create([]byte("x"))
	requireCode(t, err, store.RetCInvalidOperation)
	_, _, err = s.Read(id)
	requireCode(t, err, store.RetCInvalidOperation)
	requireCode(t, s.Update(id, nil), store.RetCInvalidOperation)
	requireCode(t, s.Delete(id), store.RetCInvalidOperation)
	_, err = s.List()
	requireCode(t, err, store.RetCInvalidOperation)
	requireCode(t, s.Close(), store.RetCInvalidOperation)
}
