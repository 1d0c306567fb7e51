// Package testing provides standardised tests and benchmarks for
// store implementations that satisfy the store.IBlobStore interface.
//
// Example usage:
//
//	factory := func() (store.IBlobStore, error) {
//		return NewMyStore(), nil
//	}
//
//	// Running the standard test suite
//	storetesting.RunBlobStoreTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	storetesting.RunBlobStoreBenchmarks(b, "MyStore", factory)
package testing
