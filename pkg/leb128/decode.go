package leb128

import (
	"io"
)

// ReadUnsigned decodes an unsigned Little Endian Base 128 represented
// number of width w from in.
// It returns the decoded value and the number of bytes read. If an error is
// returned the value is zero and the byte count is the number of bytes
// consumed before the error was detected.
// After an Overflow error the source is left right after the offending
// group, which may be inside the malformed value: callers that want to
// continue with the next value must skip the remaining groups, see Split
// and lebio.Decoder.Raw.
// ReadUnsigned panics if w is not a valid Width.
func ReadUnsigned(in io.ByteReader, w Width) (Uint128, int, error) {
	return decode(in, w, false)
}

// ReadSigned decodes a signed Little Endian Base 128 represented number of
// width w from in.
// The returned value is sign-extended to 128 bits. Errors are reported as
// by ReadUnsigned.
func ReadSigned(in io.ByteReader, w Width) (Int128, int, error) {
	u, n, err := decode(in, w, true)
	return Int128{Hi: int64(u.Hi), Lo: u.Lo}, n, err
}

func decode(in io.ByteReader, w Width, signed bool) (Uint128, int, error) {
	if !w.Valid() {
		panic("leb128: invalid width")
	}

	var (
		result Uint128
		shift  uint
		length int
		limit  = w.MaxLen()
	)

	for {
		b, err := in.ReadByte()
		if err != nil {
			if err == io.EOF {
				return Uint128{}, length, truncatedError(w, length)
			}
			return Uint128{}, length, err
		}
		length++

		payload := b & 0x7f

		if length == limit {
			// Last group that can carry bits of a w bit value.
			if b&0x80 != 0 || !lastGroupFits(payload, uint(w)-shift, signed) {
				return Uint128{}, length, overflowError(w, length-1)
			}
		}

		result = result.or7(payload, shift)
		shift += 7

		// If high order bit is 1.
		if b&0x80 == 0 {
			if signed && payload&0x40 != 0 {
				result = result.fill(shift)
			}
			return result, length, nil
		}
	}
}

// lastGroupFits returns true if the 7 bit payload of the final group of a
// value can be represented in the remaining n bits (1 <= n <= 7).
// For signed values every bit above bit n-1 must be a copy of the sign bit.
func lastGroupFits(payload byte, n uint, signed bool) bool {
	if !signed {
		return payload>>n == 0
	}
	ext := int8(payload<<1) >> 1
	top := ext >> (n - 1)
	return top == 0 || top == -1
}

// DecodeUint8 decodes an unsigned 8 bit value from in.
func DecodeUint8(in io.ByteReader) (uint8, int, error) {
	v, n, err := ReadUnsigned(in, Width8)
	return uint8(v.Lo), n, err
}

// DecodeUint16 decodes an unsigned 16 bit value from in.
func DecodeUint16(in io.ByteReader) (uint16, int, error) {
	v, n, err := ReadUnsigned(in, Width16)
	return uint16(v.Lo), n, err
}

// DecodeUint32 decodes an unsigned 32 bit value from in.
func DecodeUint32(in io.ByteReader) (uint32, int, error) {
	v, n, err := ReadUnsigned(in, Width32)
	return uint32(v.Lo), n, err
}

// DecodeUint64 decodes an unsigned 64 bit value from in.
func DecodeUint64(in io.ByteReader) (uint64, int, error) {
	v, n, err := ReadUnsigned(in, Width64)
	return v.Lo, n, err
}

// DecodeUint128 decodes an unsigned 128 bit value from in.
func DecodeUint128(in io.ByteReader) (Uint128, int, error) {
	return ReadUnsigned(in, Width128)
}

// DecodeInt8 decodes a signed 8 bit value from in.
func DecodeInt8(in io.ByteReader) (int8, int, error) {
	v, n, err := ReadSigned(in, Width8)
	return int8(v.Lo), n, err
}

// DecodeInt16 decodes a signed 16 bit value from in.
func DecodeInt16(in io.ByteReader) (int16, int, error) {
	v, n, err := ReadSigned(in, Width16)
	return int16(v.Lo), n, err
}

// DecodeInt32 decodes a signed 32 bit value from in.
func DecodeInt32(in io.ByteReader) (int32, int, error) {
	v, n, err := ReadSigned(in, Width32)
	return int32(v.Lo), n, err
}

// DecodeInt64 decodes a signed 64 bit value from in.
func DecodeInt64(in io.ByteReader) (int64, int, error) {
	v, n, err := ReadSigned(in, Width64)
	return int64(v.Lo), n, err
}

// DecodeInt128 decodes a signed 128 bit value from in.
func DecodeInt128(in io.ByteReader) (Int128, int, error) {
	return ReadSigned(in, Width128)
}
