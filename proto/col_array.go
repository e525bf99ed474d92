package proto

import "github.com/go-faster/errors"

// ColInputOf is a ColumnOf that can also serialize itself, the constraint
// composite columns (Array, Tuple, Map, ...) require of their element
// columns.
type ColInputOf[T any] interface {
	ColumnOf[T]
	EncodeColumn(b *Buffer)
	WriteColumn(w *Writer) error
}

// ColArr implements Array(T): a UInt64 column of cumulative offsets
// followed by the concatenated inner values, per spec.md §4.C.
type ColArr[T any] struct {
	Data    ColInputOf[T]
	Offsets []uint64
}

// NewArray wraps data as an Array(data.Type()) column.
func NewArray[T any](data ColInputOf[T]) *ColArr[T] {
	return &ColArr[T]{Data: data}
}

func (c *ColArr[T]) Type() ColumnType { return c.Data.Type().Array() }
func (c *ColArr[T]) Rows() int        { return len(c.Offsets) }

func (c *ColArr[T]) Reset() {
	c.Offsets = c.Offsets[:0]
	c.Data.Reset()
}

func (c *ColArr[T]) Row(i int) []T {
	start := uint64(0)
	if i > 0 {
		start = c.Offsets[i-1]
	}
	end := c.Offsets[i]
	out := make([]T, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, c.Data.Row(int(j)))
	}
	return out
}

func (c *ColArr[T]) Append(vs []T) {
	for _, v := range vs {
		c.Data.Append(v)
	}
	c.Offsets = append(c.Offsets, uint64(c.Data.Rows()))
}

func (c *ColArr[T]) EncodeColumn(b *Buffer) {
	prev := uint64(0)
	for _, off := range c.Offsets {
		b.PutUInt64(off)
		prev = off
	}
	_ = prev
	c.Data.EncodeColumn(b)
}

func (c *ColArr[T]) WriteColumn(w *Writer) error {
	var rerr error
	w.ChainBuffer(func(buf *Buffer) {
		for _, off := range c.Offsets {
			buf.PutUInt64(off)
		}
	})
	if err := c.Data.WriteColumn(w); err != nil {
		return err
	}
	return rerr
}

func (c *ColArr[T]) DecodeColumn(r *Reader, rows int) error {
	c.Offsets = make([]uint64, rows)
	for i := 0; i < rows; i++ {
		v, err := r.UInt64()
		if err != nil {
			return errors.Wrapf(err, "offset %d", i)
		}
		c.Offsets[i] = v
	}
	n := 0
	if rows > 0 {
		n = int(c.Offsets[rows-1])
	}
	if err := c.Data.DecodeColumn(r, n); err != nil {
		return errors.Wrap(err, "data")
	}
	return nil
}

// NewArrFixedStr128 returns an Array(FixedString(128)) column.
func NewArrFixedStr128() *ColArr[[128]byte] {
	return NewArray[[128]byte](new(ColFixedStr128))
}
