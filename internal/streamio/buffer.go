// Package streamio provides a small buffered framing helper for decoding
// and encoding length-prefixed bin_prot values over a byte stream. It is
// the synchronous counterpart of the reference crate's async buffered
// reader/writer: callers run their own goroutine or event loop around
// plain io.Reader/io.Writer instead of an async runtime.
package streamio

import (
	"bytes"
	"io"

	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// Buffer reuses a scratch byte slice across repeated framed reads and
// writes, avoiding a fresh allocation per message the way the teacher's
// sync.Pool-backed scratch buffers do for per-call I/O (internal/utils).
type Buffer struct {
	scratch []byte
}

// NewBuffer returns a Buffer with capacity bufSize preallocated.
func NewBuffer(bufSize int) *Buffer {
	return &Buffer{scratch: utils.GetBuffer(bufSize)}
}

// ReadFramed reads an 8-byte little-endian length prefix, then exactly
// that many payload bytes, decoding them via decode. The prefix is framing
// only: decode is handed the exact payload slice, not the underlying
// stream, so it can never read past the frame even though the format
// itself does not bound it (§9's design note).
func (b *Buffer) ReadFramed(r io.Reader, decode func(io.Reader) error) error {
	size, err := wire.ReadFixedI64LE(r)
	if err != nil {
		return err
	}
	if err := utils.ValidateAdvertisedLength(uint64(size), "frame length"); err != nil {
		return err
	}
	b.scratch = utils.GetBuffer(int(size))
	if _, err := io.ReadFull(r, b.scratch); err != nil {
		return utils.WrapError("reading frame payload", err)
	}
	return decode(bytes.NewReader(b.scratch))
}

// WriteFramed runs encode into the scratch buffer, then writes an
// 8-byte little-endian length prefix followed by the encoded bytes.
func (b *Buffer) WriteFramed(w io.Writer, encode func(io.Writer) error) error {
	buf := bytes.NewBuffer(b.scratch[:0])
	if err := encode(buf); err != nil {
		return err
	}
	b.scratch = buf.Bytes()
	if err := wire.WriteFixedI64LE(w, int64(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Release returns the Buffer's scratch slice to the shared pool. Call it
// when the Buffer is no longer needed.
func (b *Buffer) Release() {
	utils.ReleaseBuffer(b.scratch)
	b.scratch = nil
}
