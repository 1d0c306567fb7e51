// Package wire implements the primitive byte-level codec of sio: fixed-width
// big-endian integers, IEEE-754 floats by bit pattern, booleans, UTF-16 code
// units, UTF-8 strings and length-prefixed byte arrays.
//
// The package focuses on:
//   - A symmetric Writer/Reader pair that owns a small scratch buffer each
//   - Exact-length reads over sources that deliver fewer bytes than requested
//   - A single length prefix policy shared by byte arrays and strings
//
// Wire Format:
//
//	Byte      := 1 byte
//	Int16     := 2 bytes
//	Int32     := 4 bytes
//	Int64     := 8 bytes
//	Float32   := bit pattern as Int32
//	Float64   := bit pattern as Int64
//	Bool      := 1 byte (1 = true, everything else reads as false)
//	Char      := UTF-16 code unit as 2 bytes
//	ByteArray := Int32 length L; L = -1 is null, L = 0 is empty, else L raw bytes
//	String    := ByteArray holding UTF-8 text; a null array is a null string
//
// Exact-Length Reads:
//
//	Every decode operation goes through ReadExact, which loops over the source
//	until the requested number of bytes has been obtained. A source that ends
//	early produces an *EndOfInputError (errors.Is(err, ErrEndOfInput)); there is
//	no partial-value recovery.
//
// Legacy Strings:
//
//	An older format encoded strings as a code unit count followed by raw UTF-16
//	code units. WriteLegacyString/ReadLegacyString implement it for migrating
//	old data. It is wire-incompatible with the canonical UTF-8 encoding.
//
// Thread Safety:
//
//	Writer and Reader are single-stream objects and must not be shared
//	between goroutines.
package wire
