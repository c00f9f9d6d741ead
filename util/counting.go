package util

import "io"

// CountingWriter passes writes through to W and counts the bytes written,
// for WriteTo implementations that must report a total.
type CountingWriter struct {
	W io.Writer
	N int64
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.W.Write(p)
	c.N += int64(n)
	return n, err
}
