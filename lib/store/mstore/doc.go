// Package mstore implements store.IBlobStore in memory.
//
// Objects are kept in an xsync.MapOf keyed by their KSUID, which shards keys
// internally and allows lock free reads. Data is copied on the way in and on
// the way out, so callers may reuse their buffers.
//
// Thread Safety:
//
//	All methods are safe for concurrent use.
package mstore
