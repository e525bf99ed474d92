package proto

import "github.com/go-faster/errors"

// Number is the set of fixed-width scalar Go types the native protocol
// encodes directly as little-endian bytes.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ColNum is a column of a fixed-width numeric type, generic over Go's
// built-in integer and float kinds. The teacher generates one file per
// width/signedness via ./cmd/ch-gen-col; here a single generic
// implementation covers Int8..Int64, UInt8..UInt64 and Float32/64, while
// Int128/256 and UInt128/256 — which
// have no native Go representation — keep dedicated byte-array types in
// col_bigint.go.
type ColNum[T Number] struct {
	typ  ColumnType
	data []T
	put  func(b *Buffer, v T)
	get  func(r *Reader) (T, error)
}

// NewColNum constructs a column for an explicit width/codec pair. Used by
// the typed constructors below (ColInt32, ColUInt64, ...) and by the type
// registry.
func NewColNum[T Number](typ ColumnType, put func(*Buffer, T), get func(*Reader) (T, error)) *ColNum[T] {
	return &ColNum[T]{typ: typ, put: put, get: get}
}

func (c *ColNum[T]) Type() ColumnType { return c.typ }
func (c *ColNum[T]) Rows() int        { return len(c.data) }
func (c *ColNum[T]) Reset()           { c.data = c.data[:0] }
func (c *ColNum[T]) Row(i int) T      { return c.data[i] }
func (c *ColNum[T]) Append(v T)       { c.data = append(c.data, v) }

func (c *ColNum[T]) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		c.put(b, v)
	}
}

func (c *ColNum[T]) WriteColumn(w *Writer) error {
	var rerr error
	w.ChainBuffer(func(buf *Buffer) {
		c.EncodeColumn(buf)
	})
	return rerr
}

func (c *ColNum[T]) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]T, rows)
	for i := 0; i < rows; i++ {
		v, err := c.get(r)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = v
	}
	return nil
}

// Typed constructors matching the wire table in spec.md §4.C.

func ColInt8() *ColNum[int8] {
	return NewColNum(ColumnTypeInt8,
		func(b *Buffer, v int8) { b.PutInt8(v) },
		func(r *Reader) (int8, error) { return r.Int8() })
}

func ColInt16() *ColNum[int16] {
	return NewColNum(ColumnTypeInt16,
		func(b *Buffer, v int16) { b.PutInt16(v) },
		func(r *Reader) (int16, error) { return r.Int16() })
}

func ColInt32() *ColNum[int32] {
	return NewColNum(ColumnTypeInt32,
		func(b *Buffer, v int32) { b.PutInt32(v) },
		func(r *Reader) (int32, error) { return r.Int32() })
}

func ColInt64() *ColNum[int64] {
	return NewColNum(ColumnTypeInt64,
		func(b *Buffer, v int64) { b.PutInt64(v) },
		func(r *Reader) (int64, error) { return r.Int64() })
}

func ColUInt8() *ColNum[uint8] {
	return NewColNum(ColumnTypeUInt8,
		func(b *Buffer, v uint8) { b.PutUInt8(v) },
		func(r *Reader) (uint8, error) { return r.UInt8() })
}

func ColUInt16() *ColNum[uint16] {
	return NewColNum(ColumnTypeUInt16,
		func(b *Buffer, v uint16) { b.PutUInt16(v) },
		func(r *Reader) (uint16, error) { return r.UInt16() })
}

func ColUInt32() *ColNum[uint32] {
	return NewColNum(ColumnTypeUInt32,
		func(b *Buffer, v uint32) { b.PutUInt32(v) },
		func(r *Reader) (uint32, error) { return r.UInt32() })
}

func ColUInt64() *ColNum[uint64] {
	return NewColNum(ColumnTypeUInt64,
		func(b *Buffer, v uint64) { b.PutUInt64(v) },
		func(r *Reader) (uint64, error) { return r.UInt64() })
}

func ColFloat32() *ColNum[float32] {
	return NewColNum(ColumnTypeFloat32,
		func(b *Buffer, v float32) { b.PutFloat32(v) },
		func(r *Reader) (float32, error) { return r.Float32() })
}

func ColFloat64() *ColNum[float64] {
	return NewColNum(ColumnTypeFloat64,
		func(b *Buffer, v float64) { b.PutFloat64(v) },
		func(r *Reader) (float64, error) { return r.Float64() })
}

// ColBool stores one byte per row, 0 or 1.
type ColBool struct{ data []bool }

func (c *ColBool) Type() ColumnType { return ColumnTypeBool }
func (c *ColBool) Rows() int        { return len(c.data) }
func (c *ColBool) Reset()           { c.data = c.data[:0] }
func (c *ColBool) Row(i int) bool   { return c.data[i] }
func (c *ColBool) Append(v bool)    { c.data = append(c.data, v) }

func (c *ColBool) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		b.PutBool(v)
	}
}

func (c *ColBool) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColBool) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]bool, rows)
	for i := range c.data {
		v, err := r.Bool()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = v
	}
	return nil
}
