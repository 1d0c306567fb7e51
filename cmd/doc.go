// Package cmd implements the command-line interface of sio. It provides
// commands for converting between TOML attribute documents and the binary
// encoding, for inspecting encoded data without a schema and for keeping
// encoded objects in a local store.
//
// The package is organized into several subpackages:
//
//   - codec: encode, inspect, schemas, bench and metrics commands
//   - store: commands for the object store (put, get, list, del)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can also be set as environment variables with the prefix SIO_
// (e.g. SIO_LOG_LEVEL=debug), either directly or through a .env / .env.local file.
//
// See sio -help for a list of all commands.
package cmd
