// Package lebio reads and writes sequences of LEB128 values sharing a
// single stream, keeping track of the stream offset of each value.
package lebio

import (
	"errors"
	"io"

	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
)

// Decoder reads consecutive LEB128 values from a stream.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r   io.ByteReader
	off int64
	log logflags.Logger
}

// NewDecoder returns a Decoder reading from r. Bytes are consumed one at a
// time: after each call r is positioned right after the last value read.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: leb128.ByteReader(r), log: logflags.StreamLogger()}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.off
}

// Unsigned reads an unsigned value of width w.
// At the end of the stream Unsigned returns io.EOF. If the stream ends in
// the middle of a value the error is of kind leb128.Truncated. Codec errors
// are *leb128.Error values with an Offset relative to the start of the
// stream.
func (d *Decoder) Unsigned(w leb128.Width) (leb128.Uint128, error) {
	start := d.off
	v, n, err := leb128.ReadUnsigned(d.r, w)
	d.off += int64(n)
	if err != nil {
		return leb128.Uint128{}, d.fail(start, err)
	}
	if logflags.Stream() {
		d.log.WithField("offset", start).Debugf("read ULEB128 %v (%d bytes, %v)", v, n, w)
	}
	return v, nil
}

// Signed reads a signed value of width w, see Unsigned.
func (d *Decoder) Signed(w leb128.Width) (leb128.Int128, error) {
	start := d.off
	v, n, err := leb128.ReadSigned(d.r, w)
	d.off += int64(n)
	if err != nil {
		return leb128.Int128{}, d.fail(start, err)
	}
	if logflags.Stream() {
		d.log.WithField("offset", start).Debugf("read SLEB128 %v (%d bytes, %v)", v, n, w)
	}
	return v, nil
}

func (d *Decoder) Uint32() (uint32, error) {
	v, err := d.Unsigned(leb128.Width32)
	return uint32(v.Lo), err
}

func (d *Decoder) Uint64() (uint64, error) {
	v, err := d.Unsigned(leb128.Width64)
	return v.Lo, err
}

func (d *Decoder) Int32() (int32, error) {
	v, err := d.Signed(leb128.Width32)
	return int32(v.Lo), err
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Signed(leb128.Width64)
	return int64(v.Lo), err
}

// maxRawLen is the length of the longest value Raw accepts, the longest
// encoding of a 128 bit value.
var maxRawLen = leb128.Width128.MaxLen()

// Raw reads the groups of the next value without decoding them. No width
// is enforced, so Raw can skip values of unknown size up to 128 bits, or
// the rest of a value that overflowed. A value still continuing after
// maxRawLen bytes yields an error of kind leb128.Overflow.
func (d *Decoder) Raw() ([]byte, error) {
	start := d.off
	var buf []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = &leb128.Error{Kind: leb128.Truncated, Offset: int64(len(buf)), Err: io.ErrUnexpectedEOF}
				if len(buf) == 0 {
					err.(*leb128.Error).Err = io.EOF
				}
			}
			return nil, d.fail(start, err)
		}
		d.off++
		buf = append(buf, b)
		if b&0x80 == 0 {
			return buf, nil
		}
		if len(buf) == maxRawLen {
			return nil, d.fail(start, &leb128.Error{Kind: leb128.Overflow, Width: leb128.Width128, Offset: int64(len(buf) - 1)})
		}
	}
}

// fail converts err, returned while reading the value starting at start,
// into the error returned to the caller.
func (d *Decoder) fail(start int64, err error) error {
	var e *leb128.Error
	if !errors.As(err, &e) {
		if logflags.Stream() {
			d.log.WithError(err).Debugf("read failed at offset %#x", start)
		}
		return err
	}
	if e.Kind == leb128.Truncated && e.Offset == 0 {
		return io.EOF
	}
	ae := *e
	ae.Offset += start
	if logflags.Stream() {
		d.log.WithField("offset", ae.Offset).Debugf("malformed value: %v", ae.Kind)
	}
	return &ae
}
