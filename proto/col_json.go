package proto

import "github.com/go-faster/errors"

// ColObjectJSON implements Object('json'): a UInt8(1) prefix ahead of the
// delegated inner column, whose type spec the server sends alongside the
// column descriptor (resolved via the registry before Data is known).
type ColObjectJSON struct {
	Data ColInput
}

// NewObjectJSON wraps an already-resolved inner column as Object('json').
func NewObjectJSON(data ColInput) *ColObjectJSON { return &ColObjectJSON{Data: data} }

func (c *ColObjectJSON) Type() ColumnType { return ColumnTypeObject.With("'json'") }
func (c *ColObjectJSON) Rows() int        { return c.Data.Rows() }
func (c *ColObjectJSON) Reset()           { c.Data.Reset() }

func (c *ColObjectJSON) EncodeColumn(b *Buffer) {
	b.PutUInt8(1)
	c.Data.EncodeColumn(b)
}

func (c *ColObjectJSON) WriteColumn(w *Writer) error {
	w.ChainBuffer(func(buf *Buffer) { buf.PutUInt8(1) })
	return c.Data.WriteColumn(w)
}

func (c *ColObjectJSON) DecodeColumn(r *Reader, rows int) error {
	prefix, err := r.UInt8()
	if err != nil {
		return errors.Wrap(err, "prefix")
	}
	if prefix != 1 {
		return errors.Errorf("unexpected Object('json') prefix %d", prefix)
	}
	return c.Data.DecodeColumn(r, rows)
}

// Row returns row i's underlying value.
func (c *ColObjectJSON) Row(i int) any { return columnRowAny(c.Data, i) }
