package lebio

import (
	"io"

	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
)

// Encoder writes consecutive LEB128 values to a stream.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w   io.ByteWriter
	off int64
	log logflags.Logger
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: leb128.ByteWriter(w), log: logflags.StreamLogger()}
}

// Offset returns the number of bytes written so far.
func (e *Encoder) Offset() int64 {
	return e.off
}

// Unsigned writes the canonical ULEB128 encoding of v.
func (e *Encoder) Unsigned(v leb128.Uint128) error {
	start := e.off
	n, err := leb128.WriteUnsigned(e.w, v)
	e.off += int64(n)
	if err != nil {
		return e.fail(start, err)
	}
	if logflags.Stream() {
		e.log.WithField("offset", start).Debugf("wrote ULEB128 %v (%d bytes)", v, n)
	}
	return nil
}

// Signed writes the canonical SLEB128 encoding of v.
func (e *Encoder) Signed(v leb128.Int128) error {
	start := e.off
	n, err := leb128.WriteSigned(e.w, v)
	e.off += int64(n)
	if err != nil {
		return e.fail(start, err)
	}
	if logflags.Stream() {
		e.log.WithField("offset", start).Debugf("wrote SLEB128 %v (%d bytes)", v, n)
	}
	return nil
}

// fail logs err, returned by the sink while writing the value starting at
// start, and returns it unchanged.
func (e *Encoder) fail(start int64, err error) error {
	if logflags.Stream() {
		e.log.WithError(err).Debugf("write failed at offset %#x, %d bytes written", start, e.off-start)
	}
	return err
}

func (e *Encoder) Uint64(v uint64) error {
	return e.Unsigned(leb128.Uint128From64(v))
}

func (e *Encoder) Int64(v int64) error {
	return e.Signed(leb128.Int128From64(v))
}
