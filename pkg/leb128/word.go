package leb128

import (
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128 bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is a signed 128 bit integer in two's complement form.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Uint128From64 zero-extends v to 128 bits.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Int128From64 sign-extends v to 128 bits.
func Int128From64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// IsZero returns true if u is 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// BitLen returns the minimum number of bits required to represent u.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// Big converts u to a big.Int.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return new(big.Int).SetUint64(u.Lo).String()
	}
	return u.Big().String()
}

// shr7 shifts u right by one group.
func (u Uint128) shr7() Uint128 {
	return Uint128{Hi: u.Hi >> 7, Lo: u.Lo>>7 | u.Hi<<57}
}

// or7 sets the 7 bit payload p at bit offset shift.
func (u Uint128) or7(p byte, shift uint) Uint128 {
	v := uint64(p)
	switch {
	case shift >= 128:
	case shift >= 64:
		u.Hi |= v << (shift - 64)
	default:
		u.Lo |= v << shift
		if shift > 57 {
			u.Hi |= v >> (64 - shift)
		}
	}
	return u
}

// fill sets every bit at or above bit n.
func (u Uint128) fill(n uint) Uint128 {
	switch {
	case n >= 128:
	case n >= 64:
		u.Hi |= ^uint64(0) << (n - 64)
	default:
		u.Lo |= ^uint64(0) << n
		u.Hi = ^uint64(0)
	}
	return u
}

// IsZero returns true if v is 0.
func (v Int128) IsZero() bool {
	return v.Hi == 0 && v.Lo == 0
}

// Sign returns -1, 0 or +1 depending on the sign of v.
func (v Int128) Sign() int {
	switch {
	case v.Hi < 0:
		return -1
	case v.IsZero():
		return 0
	}
	return 1
}

// Big converts v to a big.Int.
func (v Int128) Big() *big.Int {
	b := big.NewInt(v.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(v.Lo))
}

func (v Int128) String() string {
	if v.Hi == int64(v.Lo)>>63 {
		return big.NewInt(int64(v.Lo)).String()
	}
	return v.Big().String()
}

func (v Int128) isMinusOne() bool {
	return v.Hi == -1 && v.Lo == ^uint64(0)
}

// sar7 shifts v right by one group, replicating the sign bit.
func (v Int128) sar7() Int128 {
	return Int128{Hi: v.Hi >> 7, Lo: v.Lo>>7 | uint64(v.Hi)<<57}
}

// bitLen returns the number of bits needed to represent v in two's
// complement, sign bit included.
func (v Int128) bitLen() int {
	u := Uint128{Hi: uint64(v.Hi), Lo: v.Lo}
	if v.Hi < 0 {
		u = Uint128{Hi: ^u.Hi, Lo: ^u.Lo}
	}
	return u.BitLen() + 1
}

var (
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	mask64     = new(big.Int).SetUint64(^uint64(0))
)

// Uint128FromBig converts b to a Uint128. The second return value is false
// if b is negative or does not fit in 128 bits.
func Uint128FromBig(b *big.Int) (Uint128, bool) {
	if b.Sign() < 0 || b.Cmp(maxUint128) > 0 {
		return Uint128{}, false
	}
	lo := new(big.Int).And(b, mask64).Uint64()
	hi := new(big.Int).Rsh(b, 64).Uint64()
	return Uint128{Hi: hi, Lo: lo}, true
}

// Int128FromBig converts b to an Int128. The second return value is false
// if b does not fit in 128 bits.
func Int128FromBig(b *big.Int) (Int128, bool) {
	if b.Cmp(minInt128) < 0 || b.Cmp(maxInt128) > 0 {
		return Int128{}, false
	}
	// And and Rsh on a negative big.Int behave as on an infinite two's
	// complement representation.
	lo := new(big.Int).And(b, mask64).Uint64()
	hi := new(big.Int).Rsh(b, 64).Int64()
	return Int128{Hi: hi, Lo: lo}, true
}
