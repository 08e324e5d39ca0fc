package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-delve/leb128/pkg/format"
	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/lebio"
)

// Settings controls how values are encoded, decoded and printed by
// lebtool commands and by the interactive shell.
type Settings struct {
	Width  leb128.Width
	Signed bool
	// Palette colors the printed groups, nil disables colors.
	Palette *format.Palette
	// Verbose also prints the bits of every group.
	Verbose bool
}

func (s Settings) kind() string {
	if s.Signed {
		return "sleb128"
	}
	return "uleb128"
}

// Encode prints the encoding of every value in values.
func Encode(out io.Writer, s Settings, values []string) error {
	for _, str := range values {
		var enc []byte
		if s.Signed {
			v, err := format.ParseSigned(str, s.Width)
			if err != nil {
				return err
			}
			enc = leb128.EncodeInt128(v)
		} else {
			v, err := format.ParseUnsigned(str, s.Width)
			if err != nil {
				return err
			}
			enc = leb128.EncodeUint128(v)
		}
		fmt.Fprintf(out, "%s => %s (%d bytes)\n", str, format.Groups(enc, s.Palette), len(enc))
		if s.Verbose {
			fmt.Fprintf(out, "\t%s\n", format.Bits(enc))
		}
	}
	return nil
}

// Decode prints every value encoded back to back in data.
func Decode(out io.Writer, s Settings, data []byte) error {
	return Dump(out, s, bytes.NewReader(data))
}

// Dump decodes consecutive values from r until the end of the stream,
// printing the offset and groups of each one.
func Dump(out io.Writer, s Settings, r io.Reader) error {
	rec := &recorder{r: leb128.ByteReader(r)}
	dec := lebio.NewDecoder(rec)
	for {
		start := dec.Offset()
		rec.buf = rec.buf[:0]
		str, err := decodeOne(dec, s)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s %v: %w", s.kind(), s.Width, err)
		}
		fmt.Fprintf(out, "%#06x: %s => %s\n", start, format.Groups(rec.buf, s.Palette), str)
		if s.Verbose {
			fmt.Fprintf(out, "\t%s\n", format.Bits(rec.buf))
		}
	}
}

func decodeOne(dec *lebio.Decoder, s Settings) (string, error) {
	if s.Signed {
		v, err := dec.Signed(s.Width)
		return v.String(), err
	}
	v, err := dec.Unsigned(s.Width)
	return v.String(), err
}

// recorder keeps a copy of the bytes read through it.
type recorder struct {
	r   io.ByteReader
	buf []byte
}

func (rec *recorder) ReadByte() (byte, error) {
	b, err := rec.r.ReadByte()
	if err == nil {
		rec.buf = append(rec.buf, b)
	}
	return b, err
}

func (rec *recorder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := rec.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}

// Split prints the value boundaries found in data without decoding.
func Split(out io.Writer, s Settings, data []byte) error {
	vals, err := leb128.SplitAll(data)
	off := 0
	for _, v := range vals {
		fmt.Fprintf(out, "%#06x: %s\n", off, format.Groups(v, s.Palette))
		off += len(v)
	}
	return err
}
