package proto

import (
	"encoding/binary"
	"math"
)

// Buffer implements low-level writing of the protocol primitives described in
// the wire format: LEB128 varints, length-prefixed strings, fixed strings and
// fixed-width little-endian integers.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	Buf []byte
}

// Reset buffer for re-use, keeping the underlying array.
func (b *Buffer) Reset() {
	b.Buf = b.Buf[:0]
}

// PutByte writes single byte.
func (b *Buffer) PutByte(v byte) {
	b.Buf = append(b.Buf, v)
}

// PutBool writes single byte, 1 for true, 0 for false.
func (b *Buffer) PutBool(v bool) {
	if v {
		b.PutByte(1)
	} else {
		b.PutByte(0)
	}
}

// PutUVarInt encodes v as LEB128 (7 data bits per byte, high bit set means
// "more bytes follow").
func (b *Buffer) PutUVarInt(v uint64) {
	for v >= 0x80 {
		b.Buf = append(b.Buf, byte(v)|0x80)
		v >>= 7
	}
	b.Buf = append(b.Buf, byte(v))
}

// PutLen is alias for PutUVarInt, used when the value is a byte length.
func (b *Buffer) PutLen(n int) {
	b.PutUVarInt(uint64(n))
}

// PutString writes a varint length prefix followed by the raw bytes.
func (b *Buffer) PutString(v string) {
	b.PutLen(len(v))
	b.Buf = append(b.Buf, v...)
}

// PutRaw appends v verbatim, with no framing.
func (b *Buffer) PutRaw(v []byte) {
	b.Buf = append(b.Buf, v...)
}

// PutFixedString right-pads v with NUL bytes up to exactly n bytes.
func (b *Buffer) PutFixedString(v []byte, n int) {
	start := len(b.Buf)
	b.Buf = append(b.Buf, make([]byte, n)...)
	copy(b.Buf[start:], v)
}

// PutUInt8 writes single byte.
func (b *Buffer) PutUInt8(v uint8) { b.PutByte(v) }

// PutUInt16 writes little-endian uint16.
func (b *Buffer) PutUInt16(v uint16) {
	b.Buf = binary.LittleEndian.AppendUint16(b.Buf, v)
}

// PutUInt32 writes little-endian uint32.
func (b *Buffer) PutUInt32(v uint32) {
	b.Buf = binary.LittleEndian.AppendUint32(b.Buf, v)
}

// PutUInt64 writes little-endian uint64.
func (b *Buffer) PutUInt64(v uint64) {
	b.Buf = binary.LittleEndian.AppendUint64(b.Buf, v)
}

// PutUInt128 writes two little-endian uint64 halves, low then high, so the
// pair round-trips through PutUInt64/ReadUInt64 pairs used elsewhere on the
// wire (e.g. UUID, which stores high-then-low separately via two calls).
func (b *Buffer) PutUInt128(lo, hi uint64) {
	b.PutUInt64(lo)
	b.PutUInt64(hi)
}

// PutInt8 writes single signed byte.
func (b *Buffer) PutInt8(v int8) { b.PutByte(byte(v)) }

// PutInt16 writes little-endian int16.
func (b *Buffer) PutInt16(v int16) { b.PutUInt16(uint16(v)) }

// PutInt32 writes little-endian int32.
func (b *Buffer) PutInt32(v int32) { b.PutUInt32(uint32(v)) }

// PutInt64 writes little-endian int64.
func (b *Buffer) PutInt64(v int64) { b.PutUInt64(uint64(v)) }

// PutFloat32 writes IEEE 754 little-endian float32.
func (b *Buffer) PutFloat32(v float32) { b.PutUInt32(math.Float32bits(v)) }

// PutFloat64 writes IEEE 754 little-endian float64.
func (b *Buffer) PutFloat64(v float64) { b.PutUInt64(math.Float64bits(v)) }
