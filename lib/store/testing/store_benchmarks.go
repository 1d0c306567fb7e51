package testing

import (
	"testing"

	"github.com/ValentinKolb/sio/lib/store"
	"github.com/segmentio/ksuid"
)

// RunBlobStoreBenchmarks runs performance benchmarks for an IBlobStore implementation.
func RunBlobStoreBenchmarks(b *testing.B, name string, factory store.Factory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Create", func(b *testing.B) {
			benchmarkCreate(b, open(b, factory), 64)
		})

		b.Run("CreateLarge", func(b *testing.B) {
			benchmarkCreate(b, open(b, factory), 64*1024)
		})

		b.Run("Read", func(b *testing.B) {
			benchmarkRead(b, open(b, factory))
		})

		b.Run("Update", func(b *testing.B) {
			benchmarkUpdate(b, open(b, factory))
		})
	})
}

func benchmarkCreate(b *testing.B, s store.IBlobStore, size int) {
	value := make([]byte, size)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := s.Create(value); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}
}

func benchmarkRead(b *testing.B, s store.IBlobStore) {
	ids := make([]ksuid.KSUID, 1000)
	for i := range ids {
		ids[i] = mustCreate(b, s, []byte("benchmark value"))
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, ok, err := s.Read(ids[i%len(ids)]); err != nil || !ok {
			b.Fatalf("Read failed: %v", err)
		}
	}
}

func benchmarkUpdate(b *testing.B, s store.IBlobStore) {
	id := mustCreate(b, s, []byte("benchmark value"))
	value := []byte("updated value")
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := s.Update(id, value); err != nil {
			b.Fatalf("Update failed: %v", err)
		}
	}
}
