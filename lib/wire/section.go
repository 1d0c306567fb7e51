package wire

import "io"

// Read implements io.Reader on top of the underlying source and keeps the
// byte count up to date. It performs a single read and may return fewer bytes
// than requested, like any io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	r.count += int64(n)
	return n, err
}

// Section is a Reader confined to a fixed number of bytes of its parent.
// Reads beyond the end of the section fail with an end of input error, so a
// nested decoder can never consume bytes that belong to the parent.
type Section struct {
	*Reader
	limit *io.LimitedReader
}

// Section returns a reader over the next n bytes of r. The section inherits the
// options of r. Close must be called to move r past the end of the section.
func (r *Reader) Section(n int) *Section {
	limit := &io.LimitedReader{R: r, N: int64(max(n, 0))}
	return &Section{
		Reader: &Reader{
			src:       limit,
			maxLength: r.maxLength,
			opts:      r.opts,
		},
		limit: limit,
	}
}

// Remaining returns the number of bytes of the section that have not been consumed
func (s *Section) Remaining() int {
	return int(s.limit.N)
}

// Close discards the unread rest of the section so the parent reader is
// positioned directly behind it.
func (s *Section) Close() error {
	return s.Skip(s.Remaining())
}
