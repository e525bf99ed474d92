package proto

import (
	"math/big"

	"github.com/go-faster/errors"
)

// Int128 is a little-endian signed 128-bit integer.
type Int128 [16]byte

// Int256 is a little-endian signed 256-bit integer.
type Int256 [32]byte

// UInt128 is a little-endian unsigned 128-bit integer.
type UInt128 [16]byte

// UInt256 is a little-endian unsigned 256-bit integer.
type UInt256 [32]byte

// BigIntToBytes encodes v into a little-endian, two's-complement buffer of
// exactly n bytes. v must fit in the signed range for that width.
func BigIntToBytes(v *big.Int, n int) []byte {
	out := make([]byte, n)
	if v.Sign() >= 0 {
		b := v.Bytes()
		reverseInto(out, b)
		return out
	}
	// Two's complement of a negative value: (1<<(8n)) + v.
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n*8))
	tmp := new(big.Int).Add(mod, v)
	b := tmp.Bytes()
	reverseInto(out, b)
	return out
}

func reverseInto(out, b []byte) {
	for i := 0; i < len(b) && i < len(out); i++ {
		out[i] = b[len(b)-1-i]
	}
}

// BytesToBigInt decodes a little-endian buffer as a signed two's-complement
// integer if signed, else as an unsigned integer.
func BytesToBigInt(buf []byte, signed bool) *big.Int {
	be := make([]byte, len(buf))
	for i, v := range buf {
		be[len(buf)-1-i] = v
	}
	v := new(big.Int).SetBytes(be)
	if signed && len(buf) > 0 && buf[len(buf)-1]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(buf)*8))
		v.Sub(v, mod)
	}
	return v
}

// Int128FromBigInt encodes v as an Int128, truncating/wrapping on overflow
// exactly as a raw byte-pack would (callers wanting range checks should use
// types-check mode at a higher layer).
func Int128FromBigInt(v *big.Int) Int128 {
	var out Int128
	copy(out[:], BigIntToBytes(v, 16))
	return out
}

// BigInt decodes v as a signed big.Int.
func (v Int128) BigInt() *big.Int { return BytesToBigInt(v[:], true) }

// Int256FromBigInt encodes v as an Int256.
func Int256FromBigInt(v *big.Int) Int256 {
	var out Int256
	copy(out[:], BigIntToBytes(v, 32))
	return out
}

// BigInt decodes v as a signed big.Int.
func (v Int256) BigInt() *big.Int { return BytesToBigInt(v[:], true) }

// UInt128FromBigInt encodes v as a UInt128.
func UInt128FromBigInt(v *big.Int) UInt128 {
	var out UInt128
	copy(out[:], BigIntToBytes(v, 16))
	return out
}

// BigInt decodes v as an unsigned big.Int.
func (v UInt128) BigInt() *big.Int { return BytesToBigInt(v[:], false) }

// UInt256FromBigInt encodes v as a UInt256.
func UInt256FromBigInt(v *big.Int) UInt256 {
	var out UInt256
	copy(out[:], BigIntToBytes(v, 32))
	return out
}

// BigInt decodes v as an unsigned big.Int.
func (v UInt256) BigInt() *big.Int { return BytesToBigInt(v[:], false) }

// colFixedBytes is the shared implementation backing Int128/256 and
// UInt128/256 columns: n raw bytes per row, read/written verbatim.
type colFixedBytes[T ~[16]byte | ~[32]byte] struct {
	typ  ColumnType
	size int
	data []T
}

func (c *colFixedBytes[T]) Type() ColumnType { return c.typ }
func (c *colFixedBytes[T]) Rows() int        { return len(c.data) }
func (c *colFixedBytes[T]) Reset()           { c.data = c.data[:0] }
func (c *colFixedBytes[T]) Row(i int) T      { return c.data[i] }
func (c *colFixedBytes[T]) Append(v T)       { c.data = append(c.data, v) }

func (c *colFixedBytes[T]) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		switch x := any(v).(type) {
		case [16]byte:
			b.PutRaw(x[:])
		case [32]byte:
			b.PutRaw(x[:])
		}
	}
}

func (c *colFixedBytes[T]) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *colFixedBytes[T]) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]T, rows)
	for i := 0; i < rows; i++ {
		buf, err := r.FixedString(c.size)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		var zero T
		switch any(zero).(type) {
		case [16]byte:
			var arr [16]byte
			copy(arr[:], buf)
			c.data[i] = any(arr).(T)
		case [32]byte:
			var arr [32]byte
			copy(arr[:], buf)
			c.data[i] = any(arr).(T)
		}
	}
	return nil
}

func ColInt128() *colFixedBytes[Int128] {
	return &colFixedBytes[Int128]{typ: ColumnTypeInt128, size: 16}
}
func ColInt256() *colFixedBytes[Int256] {
	return &colFixedBytes[Int256]{typ: ColumnTypeInt256, size: 32}
}
func ColUInt128() *colFixedBytes[UInt128] {
	return &colFixedBytes[UInt128]{typ: ColumnTypeUInt128, size: 16}
}
func ColUInt256() *colFixedBytes[UInt256] {
	return &colFixedBytes[UInt256]{typ: ColumnTypeUInt256, size: 32}
}
