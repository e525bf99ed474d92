package proto

import "github.com/go-faster/errors"

// ColFixedStr128 is a column of FixedString(128) values, specialized (as a
// plain slice type) for the common fixed-size-128 case the way the
// teacher's code generator would emit it.
type ColFixedStr128 [][128]byte

func (c ColFixedStr128) Type() ColumnType { return ColumnTypeFixedString.With("128") }
func (c ColFixedStr128) Rows() int        { return len(c) }
func (c *ColFixedStr128) Reset()          { *c = (*c)[:0] }
func (c ColFixedStr128) Row(i int) [128]byte { return c[i] }
func (c *ColFixedStr128) Append(v [128]byte) { *c = append(*c, v) }

func (c ColFixedStr128) EncodeColumn(b *Buffer) {
	for _, v := range c {
		b.PutRaw(v[:])
	}
}

func (c ColFixedStr128) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColFixedStr128) DecodeColumn(r *Reader, rows int) error {
	*c = make(ColFixedStr128, rows)
	for i := 0; i < rows; i++ {
		buf, err := r.FixedString(128)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		copy((*c)[i][:], buf)
	}
	return nil
}
