// Package store provides persistence for encoded objects. It defines the
// IBlobStore interface, the error scheme shared by all backends and typed
// helpers that combine a store with a serializer.
//
// Key Components:
//
//   - IBlobStore Interface: Create, read, update and delete opaque byte slices
//     addressed by KSUIDs. KSUIDs sort by their timestamp, so List returns
//     older objects first.
//
//   - Error System: A structured error reporting mechanism using typed return
//     codes (RetCNotFound, RetCInvalidOperation, RetCInternalError) and
//     descriptive messages.
//
//   - Save, Replace, Load: Generic helpers that serialize an object with a
//     serializer.ISerializer before it is handed to the store.
//
// Implementations:
//
//	- Memory Store (mstore): Objects are kept in a concurrent map. Suitable for
//	  tests and short lived processes.
//	  Available in the "github.com/ValentinKolb/sio/lib/store/mstore" package.
//
//	- Pebble Store (pstore): Objects are persisted in a Pebble LSM database
//	  with the KSUID bytes as key.
//	  Available in the "github.com/ValentinKolb/sio/lib/store/pstore" package.
//
// A conformance suite for implementations is available in the
// "github.com/ValentinKolb/sio/lib/store/testing" package.
package store
