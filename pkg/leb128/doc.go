// Package leb128 provides encoders and decoders for the Little Endian Base 128
// format, as defined in the DWARF v4 standard, section 7.6, page 161 and
// following.
//
// Each encoded byte is a group made of a continuation bit (bit 7) and seven
// payload bits. Groups are ordered least significant first and every group
// except the last one has the continuation bit set. Encoders always produce
// the canonical (shortest) form.
//
// Decoders are bounded by an explicit Width: at most Width.MaxLen() bytes
// are read and the decoded value must fit in Width bits, otherwise an error
// of kind Overflow is returned. A source that ends before the terminating
// group yields an error of kind Truncated. Errors reported by the
// underlying io.ByteReader or io.ByteWriter are returned unchanged.
//
// All widths share one implementation working on 128 bit words, see
// Uint128 and Int128.
package leb128
