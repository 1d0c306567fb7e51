// Package pstore implements store.IBlobStore on top of a Pebble database.
//
// Each object is one key/value pair: the 20 bytes of its KSUID as key and the
// encoded object as value. KSUIDs start with a big-endian timestamp, so a
// forward iteration over the keyspace lists objects ordered by creation second.
//
// Writes use pebble.NoSync unless the store is opened WithSync(true).
//
// Thread Safety:
//
//	All methods are safe for concurrent use. Writes are serialized, reads run
//	in parallel.
package pstore
