package leb128

import (
	"io"
)

// AppendUnsigned appends the unsigned Little Endian Base 128 encoding of x
// to dst and returns the extended buffer.
func AppendUnsigned(dst []byte, x Uint128) []byte {
	for {
		b := byte(x.Lo & 0x7f)
		x = x.shr7()
		if !x.IsZero() {
			b |= 0x80
		}
		dst = append(dst, b)
		if x.IsZero() {
			return dst
		}
	}
}

// AppendSigned appends the signed Little Endian Base 128 encoding of x to
// dst and returns the extended buffer.
func AppendSigned(dst []byte, x Int128) []byte {
	for {
		b := byte(x.Lo & 0x7f)
		x = x.sar7()

		signb := b & 0x40

		last := false
		if (x.IsZero() && signb == 0) || (x.isMinusOne() && signb != 0) {
			last = true
		} else {
			b |= 0x80
		}
		dst = append(dst, b)

		if last {
			return dst
		}
	}
}

// WriteUnsigned encodes x to the unsigned Little Endian Base 128 format
// into out. It returns the number of bytes written and the first error
// returned by out.
func WriteUnsigned(out io.ByteWriter, x Uint128) (int, error) {
	var buf [maxLen]byte
	return writeGroups(out, AppendUnsigned(buf[:0], x))
}

// WriteSigned encodes x to the signed Little Endian Base 128 format into
// out. It returns the number of bytes written and the first error returned
// by out.
func WriteSigned(out io.ByteWriter, x Int128) (int, error) {
	var buf [maxLen]byte
	return writeGroups(out, AppendSigned(buf[:0], x))
}

func writeGroups(out io.ByteWriter, groups []byte) (int, error) {
	for i, b := range groups {
		if err := out.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(groups), nil
}

// maxLen is the length of the longest encoding of a 128 bit value.
const maxLen = (128 + 6) / 7

// UnsignedLen returns the number of bytes of the unsigned encoding of x.
func UnsignedLen(x Uint128) int {
	n := x.BitLen()
	if n == 0 {
		return 1
	}
	return (n + 6) / 7
}

// SignedLen returns the number of bytes of the signed encoding of x.
func SignedLen(x Int128) int {
	return (x.bitLen() + 6) / 7
}

func EncodeUint8(x uint8) []byte   { return AppendUnsigned(nil, Uint128From64(uint64(x))) }
func EncodeUint16(x uint16) []byte { return AppendUnsigned(nil, Uint128From64(uint64(x))) }
func EncodeUint32(x uint32) []byte { return AppendUnsigned(nil, Uint128From64(uint64(x))) }
func EncodeUint64(x uint64) []byte { return AppendUnsigned(nil, Uint128From64(x)) }

// EncodeUint128 returns the unsigned Little Endian Base 128 encoding of x.
func EncodeUint128(x Uint128) []byte { return AppendUnsigned(nil, x) }

func EncodeInt8(x int8) []byte   { return AppendSigned(nil, Int128From64(int64(x))) }
func EncodeInt16(x int16) []byte { return AppendSigned(nil, Int128From64(int64(x))) }
func EncodeInt32(x int32) []byte { return AppendSigned(nil, Int128From64(int64(x))) }
func EncodeInt64(x int64) []byte { return AppendSigned(nil, Int128From64(x)) }

// EncodeInt128 returns the signed Little Endian Base 128 encoding of x.
func EncodeInt128(x Int128) []byte { return AppendSigned(nil, x) }
