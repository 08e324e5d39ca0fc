package lebio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
)

func TestEncodeDecodeSequence(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Uint64(300))
	require.NoError(t, enc.Int64(-2))
	require.NoError(t, enc.Unsigned(leb128.Uint128{Hi: 1}))
	require.NoError(t, enc.Signed(leb128.Int128From64(-1)))
	assert.Equal(t, int64(buf.Len()), enc.Offset())
	assert.Equal(t, []byte{0xac, 0x02, 0x7e}, buf.Bytes()[:3])

	dec := NewDecoder(bytes.NewReader(buf.Bytes()))
	u, err := dec.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), u)
	assert.Equal(t, int64(2), dec.Offset())

	s, err := dec.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), s)
	assert.Equal(t, int64(3), dec.Offset())

	big, err := dec.Unsigned(leb128.Width128)
	require.NoError(t, err)
	assert.Equal(t, leb128.Uint128{Hi: 1}, big)

	m, err := dec.Signed(leb128.Width8)
	require.NoError(t, err)
	assert.Equal(t, leb128.Int128From64(-1), m)

	_, err = dec.Uint32()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, enc.Offset(), dec.Offset())
}

func TestDecoderErrorOffsets(t *testing.T) {
	// 300, then a value that overflows 8 bits.
	dec := NewDecoder(bytes.NewReader([]byte{0xac, 0x02, 0x80, 0x02}))
	_, err := dec.Uint64()
	require.NoError(t, err)

	_, err = dec.Unsigned(leb128.Width8)
	require.True(t, errors.Is(err, leb128.ErrOverflow), "got %v", err)
	var e *leb128.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, int64(3), e.Offset)

	dec = NewDecoder(bytes.NewReader([]byte{0x7e, 0x80, 0x80}))
	_, err = dec.Int64()
	require.NoError(t, err)
	_, err = dec.Int64()
	require.True(t, errors.Is(err, leb128.ErrTruncated), "got %v", err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.True(t, errors.As(err, &e))
	assert.Equal(t, int64(3), e.Offset)
	assert.Equal(t, int64(3), dec.Offset())
}

type brokenReader struct{}

var errBroken = errors.New("broken pipe")

func (brokenReader) Read(p []byte) (int, error) { return 0, errBroken }

func TestDecoderIOError(t *testing.T) {
	_, err := NewDecoder(brokenReader{}).Uint64()
	assert.Equal(t, errBroken, err)
	assert.Equal(t, leb128.IOFailure, leb128.KindOf(err))
}

func TestDecoderRaw(t *testing.T) {
	// The reader does not implement io.ByteReader, check that values are
	// still split exactly.
	r := strings.NewReader("\xac\x02\x7e\xff")
	dec := NewDecoder(io.MultiReader(r))

	raw, err := dec.Raw()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xac, 0x02}, raw)
	assert.Equal(t, 2, int(r.Size())-r.Len())

	raw, err = dec.Raw()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7e}, raw)

	_, err = dec.Raw()
	assert.Equal(t, leb128.Truncated, leb128.KindOf(err))
	assert.Equal(t, int64(4), dec.Offset())

	_, err = dec.Raw()
	assert.Equal(t, io.EOF, err)
}

func TestDecoderRawLimit(t *testing.T) {
	// A 128 bit value is at most 19 bytes long.
	data := append(bytes.Repeat([]byte{0x80}, 18), 0x00, 0x05)
	dec := NewDecoder(bytes.NewReader(data))
	raw, err := dec.Raw()
	require.NoError(t, err)
	assert.Len(t, raw, 19)

	data = append(bytes.Repeat([]byte{0x80}, 25), 0x00)
	dec = NewDecoder(bytes.NewReader(data))
	_, err = dec.Raw()
	require.True(t, errors.Is(err, leb128.ErrOverflow), "got %v", err)
	var e *leb128.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, int64(18), e.Offset)
	assert.Equal(t, int64(19), dec.Offset())
}

func TestDecoderResyncAfterOverflow(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte{0xff, 0xff, 0x7f, 0x05}))
	_, err := dec.Unsigned(leb128.Width8)
	require.True(t, errors.Is(err, leb128.ErrOverflow), "got %v", err)
	assert.Equal(t, int64(2), dec.Offset())

	rest, err := dec.Raw()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f}, rest)

	v, err := dec.Unsigned(leb128.Width8)
	require.NoError(t, err)
	assert.Equal(t, leb128.Uint128From64(5), v)
}

type limitedWriter struct {
	n int
}

var errFull = errors.New("device full")

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errFull
	}
	w.n--
	return 1, nil
}

// recordingLogger keeps the messages logged through it, with the error
// attached by WithError.
type recordingLogger struct {
	logflags.Logger
	msgs *[]string
	err  error
}

func (l *recordingLogger) WithField(key string, value interface{}) logflags.Logger {
	return l
}

func (l *recordingLogger) WithError(err error) logflags.Logger {
	return &recordingLogger{msgs: l.msgs, err: err}
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.err != nil {
		msg += " error=" + l.err.Error()
	}
	*l.msgs = append(*l.msgs, msg)
}

func TestEncoderWriteError(t *testing.T) {
	var msgs []string
	logflags.SetLoggerFactory(func(flag bool, fields logflags.Fields, out io.Writer) logflags.Logger {
		return &recordingLogger{msgs: &msgs}
	})
	defer logflags.SetLoggerFactory(nil)
	require.NoError(t, logflags.Setup(true, "stream", ""))

	enc := NewEncoder(&limitedWriter{n: 2})
	require.NoError(t, enc.Uint64(1))
	err := enc.Uint64(300)
	assert.Equal(t, errFull, err)
	assert.Equal(t, leb128.IOFailure, leb128.KindOf(err))
	assert.Equal(t, int64(2), enc.Offset())

	require.Len(t, msgs, 2)
	assert.Equal(t, "wrote ULEB128 1 (1 bytes)", msgs[0])
	assert.Equal(t, "write failed at offset 0x1, 1 bytes written error=device full", msgs[1])
}
