package proto

import "github.com/go-faster/errors"

// ColNullable implements Nullable(T): a byte-wise null mask (1 = NULL)
// followed by the payload, written as if nulls were default-initialised.
type ColNullable[T any] struct {
	Data  ColInputOf[T]
	nulls []bool
}

// NewNullable wraps data as Nullable(data.Type()).
func NewNullable[T any](data ColInputOf[T]) *ColNullable[T] {
	return &ColNullable[T]{Data: data}
}

func (c *ColNullable[T]) Type() ColumnType { return c.Data.Type().Nullable() }
func (c *ColNullable[T]) Rows() int        { return len(c.nulls) }

func (c *ColNullable[T]) Reset() {
	c.nulls = c.nulls[:0]
	c.Data.Reset()
}

// IsNull reports whether row i is NULL.
func (c *ColNullable[T]) IsNull(i int) bool { return c.nulls[i] }

// Row returns row i's value; if the row is NULL, the inner column's default
// zero value is returned (callers should check IsNull first).
func (c *ColNullable[T]) Row(i int) T { return c.Data.Row(i) }

// Append appends v as non-NULL.
func (c *ColNullable[T]) Append(v T) {
	c.Data.Append(v)
	c.nulls = append(c.nulls, false)
}

// AppendNull appends a NULL row; an inner zero value is still written as
// the payload per spec.md §4.C.
func (c *ColNullable[T]) AppendNull() {
	var zero T
	c.Data.Append(zero)
	c.nulls = append(c.nulls, true)
}

func (c *ColNullable[T]) EncodeColumn(b *Buffer) {
	for _, n := range c.nulls {
		b.PutBool(n)
	}
	c.Data.EncodeColumn(b)
}

func (c *ColNullable[T]) WriteColumn(w *Writer) error {
	w.ChainBuffer(func(buf *Buffer) {
		for _, n := range c.nulls {
			buf.PutBool(n)
		}
	})
	return c.Data.WriteColumn(w)
}

func (c *ColNullable[T]) DecodeColumn(r *Reader, rows int) error {
	c.nulls = make([]bool, rows)
	for i := 0; i < rows; i++ {
		v, err := r.Bool()
		if err != nil {
			return errors.Wrapf(err, "null mask %d", i)
		}
		c.nulls[i] = v
	}
	if err := c.Data.DecodeColumn(r, rows); err != nil {
		return errors.Wrap(err, "data")
	}
	return nil
}
