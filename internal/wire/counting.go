package wire

// CountingWriter discards everything written to it and records the total
// byte count, used to derive Size from Write without allocating an output
// buffer.
type CountingWriter struct {
	n int
}

// Write implements io.Writer.
func (c *CountingWriter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// Len returns the number of bytes written so far.
func (c *CountingWriter) Len() int {
	return c.n
}
