package proto

import "github.com/go-faster/errors"

// ColStr is a column of variable-length strings: each value is a varint
// length prefix followed by raw bytes.
type ColStr struct {
	data []string
	// Raw, when true, makes DecodeColumn read values through
	// Reader.StrBytes instead of Reader.Str. The wire form and the stored
	// values are identical either way, and Row/Append exchange string in
	// both cases. Mirrors the connection-level strings_as_bytes client
	// setting.
	Raw bool
}

func (c *ColStr) Type() ColumnType { return ColumnTypeString }
func (c *ColStr) Rows() int        { return len(c.data) }
func (c *ColStr) Reset()           { c.data = c.data[:0] }
func (c *ColStr) Row(i int) string { return c.data[i] }
func (c *ColStr) Append(v string)  { c.data = append(c.data, v) }

func (c *ColStr) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		b.PutString(v)
	}
}

func (c *ColStr) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColStr) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]string, rows)
	for i := 0; i < rows; i++ {
		if c.Raw {
			b, err := r.StrBytes()
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			c.data[i] = string(b)
			continue
		}
		v, err := r.Str()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = v
	}
	return nil
}

// ColFixedStr is a column of fixed-size byte strings, NUL-padded on write.
type ColFixedStr struct {
	Size int
	data [][]byte
}

func (c *ColFixedStr) Type() ColumnType { return ColumnTypeFixedString.With(itoa(c.Size)) }
func (c *ColFixedStr) Rows() int        { return len(c.data) }
func (c *ColFixedStr) Reset()           { c.data = c.data[:0] }
func (c *ColFixedStr) Row(i int) []byte { return c.data[i] }
func (c *ColFixedStr) Append(v []byte)  { c.data = append(c.data, v) }

func (c *ColFixedStr) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		b.PutFixedString(v, c.Size)
	}
}

func (c *ColFixedStr) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColFixedStr) DecodeColumn(r *Reader, rows int) error {
	c.data = make([][]byte, rows)
	for i := 0; i < rows; i++ {
		v, err := r.FixedString(c.Size)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = v
	}
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
