package wire

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEndOfInput is returned when the source is exhausted before a value
	// could be read completely. It is fatal for the current decode call.
	ErrEndOfInput = errors.New("wire: end of input")
	// ErrInvalidLength is returned when a length prefix is smaller than -1.
	ErrInvalidLength = errors.New("wire: invalid length prefix")
	// ErrLengthLimit is returned when a length prefix exceeds the configured maximum.
	ErrLengthLimit = errors.New("wire: length exceeds limit")
)

// EndOfInputError describes a read that could not be satisfied because the
// underlying source ran out of bytes.
type EndOfInputError struct {
	Requested int // number of bytes the caller asked for
	Obtained  int // number of bytes the source delivered before it ended
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("wire: end of input: requested %d bytes, obtained %d", e.Requested, e.Obtained)
}

// Is makes errors.Is(err, ErrEndOfInput) and errors.Is(err, io.ErrUnexpectedEOF) hold.
func (e *EndOfInputError) Is(target error) bool {
	return target == ErrEndOfInput || target == io.ErrUnexpectedEOF
}
