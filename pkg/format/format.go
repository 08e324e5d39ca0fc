// Package format converts between the textual forms used by lebtool and
// the values and byte sequences of package leb128.
package format

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-delve/leb128/pkg/leb128"
)

// ParseUnsigned parses s as an unsigned integer of width w. The usual Go
// prefixes (0x, 0o, 0b) and underscores are accepted.
func ParseUnsigned(s string, w leb128.Width) (leb128.Uint128, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return leb128.Uint128{}, fmt.Errorf("invalid integer %q", s)
	}
	if b.Sign() < 0 || b.BitLen() > int(w) {
		return leb128.Uint128{}, fmt.Errorf("%s does not fit in an unsigned %s integer", s, w)
	}
	u, _ := leb128.Uint128FromBig(b)
	return u, nil
}

// ParseSigned parses s as a signed integer of width w.
func ParseSigned(s string, w leb128.Width) (leb128.Int128, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return leb128.Int128{}, fmt.Errorf("invalid integer %q", s)
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(w)-1)
	min := new(big.Int).Neg(max)
	if b.Cmp(min) < 0 || b.Cmp(max) >= 0 {
		return leb128.Int128{}, fmt.Errorf("%s does not fit in a signed %s integer", s, w)
	}
	v, _ := leb128.Int128FromBig(b)
	return v, nil
}

// ParseHex parses hexadecimal bytes. Arguments are concatenated; spaces,
// commas, colons and 0x prefixes are ignored, so "ac02", "ac 02",
// "0xac,0x02" and "ac:02" are all the same two bytes.
func ParseHex(args ...string) ([]byte, error) {
	var sb strings.Builder
	for _, arg := range args {
		for _, f := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ' ' || r == ',' || r == ':' || r == '\t' || r == '\n'
		}) {
			f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
			if len(f)%2 == 1 && len(f) <= 2 {
				f = "0" + f
			}
			sb.WriteString(f)
		}
	}
	b, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %v", err)
	}
	return b, nil
}

// Palette holds the ANSI color codes used by Groups. A nil *Palette
// disables colors.
type Palette struct {
	Continuation int
	Terminator   int
}

const (
	highlightEscapeCode = "\033[%dm"
	resetEscapeCode     = "\033[0m"
)

// DefaultPalette returns the palette used when the configuration does not
// specify colors.
func DefaultPalette() *Palette {
	return &Palette{Continuation: 90, Terminator: 32}
}

// Groups formats b as space separated hex bytes. With a non-nil palette
// groups with the continuation bit set and terminating groups are colored
// differently.
func Groups(b []byte, p *Palette) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if p == nil {
			fmt.Fprintf(&sb, "%02x", c)
			continue
		}
		color := p.Terminator
		if c&0x80 != 0 {
			color = p.Continuation
		}
		fmt.Fprintf(&sb, highlightEscapeCode+"%02x"+resetEscapeCode, color, c)
	}
	return sb.String()
}

// Bits formats b one group at a time, separating the continuation bit from
// the payload: 0xac 0x02 is "1|0101100 0|0000010".
func Bits(b []byte) string {
	s := make([]string, len(b))
	for i, c := range b {
		s[i] = fmt.Sprintf("%d|%07b", c>>7, c&0x7f)
	}
	return strings.Join(s, " ")
}
