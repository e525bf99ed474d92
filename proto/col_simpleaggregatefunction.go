package proto

// ColSimpleAggregateFunction wraps an inner column for
// SimpleAggregateFunction(func, T): on the wire it is indistinguishable from
// its argument type T, so this simply delegates and remembers the function
// name for Type().
type ColSimpleAggregateFunction struct {
	Func string
	Data ColInput
}

// NewSimpleAggregateFunction wraps data as SimpleAggregateFunction(fn, data.Type()).
func NewSimpleAggregateFunction(fn string, data ColInput) *ColSimpleAggregateFunction {
	return &ColSimpleAggregateFunction{Func: fn, Data: data}
}

func (c *ColSimpleAggregateFunction) Type() ColumnType {
	return ColumnTypeSimpleAggregateFunction.With(c.Func, string(c.Data.Type()))
}
func (c *ColSimpleAggregateFunction) Rows() int                          { return c.Data.Rows() }
func (c *ColSimpleAggregateFunction) Reset()                             { c.Data.Reset() }
func (c *ColSimpleAggregateFunction) EncodeColumn(b *Buffer)              { c.Data.EncodeColumn(b) }
func (c *ColSimpleAggregateFunction) WriteColumn(w *Writer) error        { return c.Data.WriteColumn(w) }
func (c *ColSimpleAggregateFunction) DecodeColumn(r *Reader, n int) error { return c.Data.DecodeColumn(r, n) }

// Row returns row i's underlying value.
func (c *ColSimpleAggregateFunction) Row(i int) any { return columnRowAny(c.Data, i) }
