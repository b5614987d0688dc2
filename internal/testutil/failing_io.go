// Package testutil provides small io.Writer/io.Reader fakes for exercising
// I/O-error propagation without needing a real file or socket. No test in
// this module imports it yet.
package testutil

import (
	"bytes"
	"errors"
	"io"
)

// ErrFailingWriter is returned by FailingWriter once its byte budget is
// exhausted.
var ErrFailingWriter = errors.New("testutil: simulated write failure")

// FailingWriter accepts up to N bytes before returning ErrFailingWriter,
// letting tests assert that a sink failure partway through a composite
// encode is propagated unchanged rather than swallowed.
type FailingWriter struct {
	Remaining int
	buf       bytes.Buffer
}

// NewFailingWriter returns a FailingWriter that accepts exactly n bytes.
func NewFailingWriter(n int) *FailingWriter {
	return &FailingWriter{Remaining: n}
}

// Write implements io.Writer.
func (w *FailingWriter) Write(p []byte) (int, error) {
	if len(p) > w.Remaining {
		n, _ := w.buf.Write(p[:w.Remaining])
		w.Remaining = 0
		return n, ErrFailingWriter
	}
	w.Remaining -= len(p)
	return w.buf.Write(p)
}

// Bytes returns the bytes successfully accepted so far.
func (w *FailingWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// TruncatingReader wraps a byte slice and returns io.ErrUnexpectedEOF once
// the underlying bytes are exhausted, mirroring a connection that closes
// mid-value.
type TruncatingReader struct {
	r *bytes.Reader
}

// NewTruncatingReader returns a reader over data.
func NewTruncatingReader(data []byte) *TruncatingReader {
	return &TruncatingReader{r: bytes.NewReader(data)}
}

// Read implements io.Reader.
func (r *TruncatingReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF && n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	return n, err
}
