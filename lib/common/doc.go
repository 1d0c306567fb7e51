// Package common provides the configuration and logging shared by the sio
// packages and the command line tool.
//
// Key Components:
//
//   - Config: Settings of the command line tool (log level, decoder length
//     limit, object store backend). Renders as a table for display.
//
//   - Logger: Custom logging implementation plugged into Dragonboat's logger
//     package. Every sio package obtains its logger with logger.GetLogger, and
//     InitLoggers switches all of them to the common format and level.
package common
