package leb128

import (
	"io"
)

// ByteReader returns r as an io.ByteReader. If r does not implement
// io.ByteReader it is wrapped so that every ReadByte call reads exactly one
// byte from r, which leaves r positioned right after the last decoded
// value. Wrapping a bufio.Reader around r would read ahead instead.
func ByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

// maxConsecutiveEmptyReads is the number of (0, nil) reads after which
// ReadByte gives up with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

func (br *byteReader) ReadByte() (byte, error) {
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := br.r.Read(br.buf[:])
		if n == 1 {
			return br.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

// ByteWriter returns w as an io.ByteWriter, wrapping it if needed.
func ByteWriter(w io.Writer) io.ByteWriter {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw
	}
	return &byteWriter{w: w}
}

type byteWriter struct {
	w   io.Writer
	buf [1]byte
}

func (bw *byteWriter) WriteByte(c byte) error {
	bw.buf[0] = c
	_, err := bw.w.Write(bw.buf[:])
	return err
}
