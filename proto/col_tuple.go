package proto

import "github.com/go-faster/errors"

// columnRowAny returns column row i as an untyped value, used by
// ColTuple/ColMap to assemble heterogeneous rows from a slice of
// differently-typed element columns without a generic parameter per
// element. Column implementations not listed below return nil; among them
// are Int128/Int256/UInt128/UInt256, ColFixedStr128 and the composite
// columns (Array, Nullable, LowCardinality, Tuple, Map, Nested,
// SimpleAggregateFunction, Object('json')).
func columnRowAny(c Column, i int) any {
	switch v := c.(type) {
	case *ColNum[int8]:
		return v.Row(i)
	case *ColNum[int16]:
		return v.Row(i)
	case *ColNum[int32]:
		return v.Row(i)
	case *ColNum[int64]:
		return v.Row(i)
	case *ColNum[uint8]:
		return v.Row(i)
	case *ColNum[uint16]:
		return v.Row(i)
	case *ColNum[uint32]:
		return v.Row(i)
	case *ColNum[uint64]:
		return v.Row(i)
	case *ColNum[float32]:
		return v.Row(i)
	case *ColNum[float64]:
		return v.Row(i)
	case *ColBool:
		return v.Row(i)
	case *ColStr:
		return v.Row(i)
	case *ColFixedStr:
		return v.Row(i)
	case *ColDate:
		return v.Row(i)
	case *ColDate32:
		return v.Row(i)
	case *ColDateTime:
		return v.Row(i)
	case *ColDateTime64:
		return v.Row(i)
	case *ColUUID:
		return v.Row(i)
	case *ColIPv4:
		return v.Row(i)
	case *ColIPv6:
		return v.Row(i)
	case *colEnum:
		return v.RowName(i)
	case *ColEnum8:
		return v.RowName(i)
	case *ColEnum16:
		return v.RowName(i)
	case *ColDecimal32:
		return v.Row(i)
	case *ColDecimal64:
		return v.Row(i)
	case *ColDecimal128:
		return v.Row(i)
	case *ColDecimal256:
		return v.Row(i)
	default:
		return nil
	}
}

// ColTuple implements Tuple(T1, ..., Tk): no framing, each sub-column
// written/read independently, all of the same length.
type ColTuple struct {
	Elems []ColInput
}

// NewTuple builds a Tuple column from its element columns.
func NewTuple(elems ...ColInput) *ColTuple { return &ColTuple{Elems: elems} }

func (c *ColTuple) Type() ColumnType {
	parts := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		parts[i] = string(e.Type())
	}
	s := "Tuple("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return ColumnType(s + ")")
}

func (c *ColTuple) Rows() int {
	if len(c.Elems) == 0 {
		return 0
	}
	return c.Elems[0].Rows()
}

func (c *ColTuple) Reset() {
	for _, e := range c.Elems {
		e.Reset()
	}
}

// Row returns row i as one value per element column, in declaration order.
func (c *ColTuple) Row(i int) []any {
	out := make([]any, len(c.Elems))
	for j, e := range c.Elems {
		out[j] = columnRowAny(e, i)
	}
	return out
}

func (c *ColTuple) EncodeColumn(b *Buffer) {
	for _, e := range c.Elems {
		e.EncodeColumn(b)
	}
}

func (c *ColTuple) WriteColumn(w *Writer) error {
	for _, e := range c.Elems {
		if err := e.WriteColumn(w); err != nil {
			return err
		}
	}
	return nil
}

func (c *ColTuple) DecodeColumn(r *Reader, rows int) error {
	for i, e := range c.Elems {
		if err := e.DecodeColumn(r, rows); err != nil {
			return errors.Wrapf(err, "elem %d", i)
		}
	}
	return nil
}
