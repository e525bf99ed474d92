package proto

import (
	"time"

	"github.com/go-faster/errors"
)

// ColDate is a column of Date values: UInt16 days since 1970-01-01.
type ColDate struct{ data []time.Time }

func (c *ColDate) Type() ColumnType   { return ColumnTypeDate }
func (c *ColDate) Rows() int          { return len(c.data) }
func (c *ColDate) Reset()             { c.data = c.data[:0] }
func (c *ColDate) Row(i int) time.Time { return c.data[i] }
func (c *ColDate) Append(v time.Time) { c.data = append(c.data, v) }

func (c *ColDate) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		days := v.UTC().Unix() / 86400
		b.PutUInt16(uint16(days))
	}
}
func (c *ColDate) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColDate) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		v, err := r.UInt16()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = time.Unix(int64(v)*86400, 0).UTC()
	}
	return nil
}

// ColDate32 is a column of Date32 values: Int32 days since 1970-01-01,
// supporting a wider range (including dates before 1970) than Date.
type ColDate32 struct{ data []time.Time }

func (c *ColDate32) Type() ColumnType    { return ColumnTypeDate32 }
func (c *ColDate32) Rows() int           { return len(c.data) }
func (c *ColDate32) Reset()              { c.data = c.data[:0] }
func (c *ColDate32) Row(i int) time.Time { return c.data[i] }
func (c *ColDate32) Append(v time.Time)  { c.data = append(c.data, v) }

func (c *ColDate32) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		days := v.UTC().Unix() / 86400
		b.PutInt32(int32(days))
	}
}
func (c *ColDate32) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColDate32) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		v, err := r.Int32()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = time.Unix(int64(v)*86400, 0).UTC()
	}
	return nil
}

// ColDateTime is a column of DateTime values: UInt32 seconds since epoch,
// with an optional timezone type-parameter retained only for round-tripping
// the type string (values are always interpreted/emitted as UTC instants).
type ColDateTime struct {
	Location string
	data     []time.Time
}

func (c *ColDateTime) Type() ColumnType {
	if c.Location == "" {
		return ColumnTypeDateTime
	}
	return ColumnTypeDateTime.With("'" + c.Location + "'")
}
func (c *ColDateTime) Rows() int           { return len(c.data) }
func (c *ColDateTime) Reset()              { c.data = c.data[:0] }
func (c *ColDateTime) Row(i int) time.Time { return c.data[i] }
func (c *ColDateTime) Append(v time.Time)  { c.data = append(c.data, v) }

func (c *ColDateTime) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		b.PutUInt32(uint32(v.Unix()))
	}
}
func (c *ColDateTime) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColDateTime) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		v, err := r.UInt32()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		c.data[i] = time.Unix(int64(v), 0).UTC()
	}
	return nil
}

// ColDateTime64 is a column of DateTime64(precision, [tz]) values: Int64
// ticks at a scale of 10^precision per second.
type ColDateTime64 struct {
	Precision int
	Location  string
	data      []time.Time
}

func (c *ColDateTime64) scale() int64 {
	s := int64(1)
	for i := 0; i < c.Precision; i++ {
		s *= 10
	}
	return s
}

func (c *ColDateTime64) Type() ColumnType {
	args := []string{itoa(c.Precision)}
	if c.Location != "" {
		args = append(args, "'"+c.Location+"'")
	}
	return ColumnTypeDateTime64.With(args...)
}
func (c *ColDateTime64) Rows() int           { return len(c.data) }
func (c *ColDateTime64) Reset()              { c.data = c.data[:0] }
func (c *ColDateTime64) Row(i int) time.Time { return c.data[i] }
func (c *ColDateTime64) Append(v time.Time)  { c.data = append(c.data, v) }

func (c *ColDateTime64) EncodeColumn(b *Buffer) {
	scale := c.scale()
	for _, v := range c.data {
		secs := v.Unix()
		nanos := int64(v.Nanosecond())
		ticks := secs*scale + (nanos*scale)/1e9
		b.PutInt64(ticks)
	}
}
func (c *ColDateTime64) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColDateTime64) DecodeColumn(r *Reader, rows int) error {
	scale := c.scale()
	c.data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		v, err := r.Int64()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		secs := v / scale
		rem := v % scale
		nanos := rem * (1_000_000_000 / scale)
		c.data[i] = time.Unix(secs, nanos).UTC()
	}
	return nil
}
