package leb128

import "strconv"

// Width is the bit width of the integer being decoded.
type Width uint8

const (
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Valid returns true if w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64, Width128:
		return true
	}
	return false
}

// MaxLen returns the maximum number of bytes a value of width w can be
// encoded with, that is ceil(w/7).
func (w Width) MaxLen() int {
	return (int(w) + 6) / 7
}

func (w Width) String() string {
	return strconv.Itoa(int(w)) + "-bit"
}

// ParseWidth converts a bit count (8, 16, 32, 64 or 128) into a Width.
func ParseWidth(bits int) (Width, bool) {
	w := Width(bits)
	if bits < 0 || bits > 255 || !w.Valid() {
		return 0, false
	}
	return w, true
}
