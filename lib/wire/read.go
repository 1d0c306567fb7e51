package wire

import (
	"io"
)

// maxEmptyReads is the number of consecutive (0, nil) reads after which a
// source is considered stalled.
const maxEmptyReads = 100

// ReadExact reads exactly len(p) bytes from r into p.
//
// A single Read call on r may return fewer bytes than requested (sockets, pipes,
// chunked transports do this routinely), so ReadExact keeps pulling until either
// p is full or the source is exhausted. It returns the number of bytes copied.
// A count smaller than len(p) is only ever returned together with an error:
//   - *EndOfInputError if the source reported io.EOF before p was filled
//   - io.ErrNoProgress if the source keeps returning (0, nil)
//   - any other error from r, unchanged
//
// Bytes delivered together with io.EOF are counted, so a source that returns
// (len(p), io.EOF) satisfies the read.
func ReadExact(r io.Reader, p []byte) (int, error) {
	n := 0
	empty := 0
	for n < len(p) {
		m, err := r.Read(p[n:])
		n += m

		if n >= len(p) {
			return n, nil
		}
		if err == io.EOF {
			return n, &EndOfInputError{Requested: len(p), Obtained: n}
		}
		if err != nil {
			return n, err
		}

		// guard against sources that never make progress
		if m == 0 {
			empty++
			if empty >= maxEmptyReads {
				return n, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}
	return n, nil
}
