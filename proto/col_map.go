package proto

import "github.com/go-faster/errors"

// ColMap implements Map(K,V), encoded identically to Array(Tuple(K,V)): a
// UInt64 offsets column followed by the concatenated key column and value
// column (each of length equal to the last offset).
type ColMap struct {
	Key     ColInput
	Value   ColInput
	Offsets []uint64
}

// NewMap builds a Map(K,V) column from pre-built, initially-empty key and
// value columns.
func NewMap(key, value ColInput) *ColMap {
	return &ColMap{Key: key, Value: value}
}

func (c *ColMap) Type() ColumnType {
	return ColumnTypeMap.With(string(c.Key.Type()), string(c.Value.Type()))
}
func (c *ColMap) Rows() int { return len(c.Offsets) }

func (c *ColMap) Reset() {
	c.Offsets = c.Offsets[:0]
	c.Key.Reset()
	c.Value.Reset()
}

// CloseRow marks the end of the current row after its key/value pairs have
// been appended directly to Key and Value.
func (c *ColMap) CloseRow() {
	c.Offsets = append(c.Offsets, uint64(c.Key.Rows()))
}

func (c *ColMap) EncodeColumn(b *Buffer) {
	prev := uint64(0)
	for _, off := range c.Offsets {
		b.PutUInt64(off)
		prev = off
	}
	_ = prev
	c.Key.EncodeColumn(b)
	c.Value.EncodeColumn(b)
}

func (c *ColMap) WriteColumn(w *Writer) error {
	w.ChainBuffer(func(buf *Buffer) {
		for _, off := range c.Offsets {
			buf.PutUInt64(off)
		}
	})
	if err := c.Key.WriteColumn(w); err != nil {
		return err
	}
	return c.Value.WriteColumn(w)
}

func (c *ColMap) DecodeColumn(r *Reader, rows int) error {
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
	if err := c.Key.DecodeColumn(r, n); err != nil {
		return errors.Wrap(err, "key")
	}
	if err := c.Value.DecodeColumn(r, n); err != nil {
		return errors.Wrap(err, "value")
	}
	return nil
}

// Row materialises row i as a map keyed by the key column's row value;
// duplicate keys within a row resolve last-wins, per spec.md §4.C.
func (c *ColMap) Row(i int) map[any]any {
	start := uint64(0)
	if i > 0 {
		start = c.Offsets[i-1]
	}
	end := c.Offsets[i]
	out := make(map[any]any, end-start)
	for j := start; j < end; j++ {
		k := columnRowAny(c.Key, int(j))
		v := columnRowAny(c.Value, int(j))
		out[k] = v
	}
	return out
}
