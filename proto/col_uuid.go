package proto

import (
	"encoding/binary"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ColUUID is a column of UUID values, stored on the wire as two UInt64
// halves (high then low), but exposed to callers as canonical uuid.UUID.
type ColUUID struct{ data []uuid.UUID }

func (c *ColUUID) Type() ColumnType   { return ColumnTypeUUID }
func (c *ColUUID) Rows() int          { return len(c.data) }
func (c *ColUUID) Reset()             { c.data = c.data[:0] }
func (c *ColUUID) Row(i int) uuid.UUID { return c.data[i] }
func (c *ColUUID) Append(v uuid.UUID) { c.data = append(c.data, v) }

func (c *ColUUID) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		hi := binary.BigEndian.Uint64(v[0:8])
		lo := binary.BigEndian.Uint64(v[8:16])
		b.PutUInt64(hi)
		b.PutUInt64(lo)
	}
}
func (c *ColUUID) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColUUID) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]uuid.UUID, rows)
	for i := 0; i < rows; i++ {
		hi, err := r.UInt64()
		if err != nil {
			return errors.Wrapf(err, "row %d high", i)
		}
		lo, err := r.UInt64()
		if err != nil {
			return errors.Wrapf(err, "row %d low", i)
		}
		var v uuid.UUID
		binary.BigEndian.PutUint64(v[0:8], hi)
		binary.BigEndian.PutUint64(v[8:16], lo)
		c.data[i] = v
	}
	return nil
}
