package proto

import "github.com/go-faster/errors"

// ColNested implements Nested(n1 T1, ..., nk Tk): wire-identical to
// Array(Tuple(T1,...,Tk)) when the server setting flatten_nested is 0 (the
// only mode this package supports); each row is a slice of sub-row tuples.
type ColNested struct {
	Names   []string
	Tuple   *ColTuple
	Offsets []uint64
}

// NewNested builds a Nested column from parallel name/column slices.
func NewNested(names []string, elems ...ColInput) *ColNested {
	return &ColNested{Names: names, Tuple: NewTuple(elems...)}
}

func (c *ColNested) Type() ColumnType {
	parts := make([]string, len(c.Names))
	for i, n := range c.Names {
		parts[i] = n + " " + string(c.Tuple.Elems[i].Type())
	}
	s := "Nested("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return ColumnType(s + ")")
}

func (c *ColNested) Rows() int { return len(c.Offsets) }

func (c *ColNested) Reset() {
	c.Offsets = c.Offsets[:0]
	c.Tuple.Reset()
}

// CloseRow marks the end of the current nested-array row after its
// sub-rows have been appended directly to the element columns.
func (c *ColNested) CloseRow() {
	c.Offsets = append(c.Offsets, uint64(c.Tuple.Rows()))
}

func (c *ColNested) EncodeColumn(b *Buffer) {
	for _, off := range c.Offsets {
		b.PutUInt64(off)
	}
	c.Tuple.EncodeColumn(b)
}

func (c *ColNested) WriteColumn(w *Writer) error {
	w.ChainBuffer(func(buf *Buffer) {
		for _, off := range c.Offsets {
			buf.PutUInt64(off)
		}
	})
	return c.Tuple.WriteColumn(w)
}

func (c *ColNested) DecodeColumn(r *Reader, rows int) error {
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
	return c.Tuple.DecodeColumn(r, n)
}

// Row returns row i as a slice of sub-row tuples, each a []any in element
// declaration order.
func (c *ColNested) Row(i int) [][]any {
	start := uint64(0)
	if i > 0 {
		start = c.Offsets[i-1]
	}
	end := c.Offsets[i]
	out := make([][]any, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, c.Tuple.Row(int(j)))
	}
	return out
}
