package leb128

import "io"

// Split returns the bytes of the first encoded value in buf and the bytes
// that follow it. The value is not decoded, so no width is checked. If buf
// does not contain a terminating group the error is of kind Truncated.
func Split(buf []byte) (value, rest []byte, err error) {
	for i, b := range buf {
		if b&0x80 == 0 {
			return buf[:i+1], buf[i+1:], nil
		}
	}
	e := &Error{Kind: Truncated, Offset: int64(len(buf)), Err: io.ErrUnexpectedEOF}
	if len(buf) == 0 {
		e.Err = io.EOF
	}
	return nil, buf, e
}

// SplitAll splits buf into the encoded values it contains. Trailing bytes
// that do not form a complete value yield an error of kind Truncated whose
// Offset is relative to the start of buf; the values found before them are
// returned as well.
func SplitAll(buf []byte) ([][]byte, error) {
	var (
		r   [][]byte
		off int
	)
	for len(buf) > 0 {
		v, rest, err := Split(buf)
		if err != nil {
			err.(*Error).Offset += int64(off)
			return r, err
		}
		r = append(r, v)
		off += len(v)
		buf = rest
	}
	return r, nil
}
