package proto

import (
	"encoding/binary"
	"net/netip"

	"github.com/go-faster/errors"
)

// ColIPv4 is a column of IPv4 values: a UInt32 in network byte order.
type ColIPv4 struct{ data []netip.Addr }

func (c *ColIPv4) Type() ColumnType    { return ColumnTypeIPv4 }
func (c *ColIPv4) Rows() int           { return len(c.data) }
func (c *ColIPv4) Reset()              { c.data = c.data[:0] }
func (c *ColIPv4) Row(i int) netip.Addr { return c.data[i] }
func (c *ColIPv4) Append(v netip.Addr) { c.data = append(c.data, v) }

func (c *ColIPv4) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		a4 := v.As4()
		b.PutUInt32(binary.BigEndian.Uint32(a4[:]))
	}
}
func (c *ColIPv4) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColIPv4) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]netip.Addr, rows)
	for i := 0; i < rows; i++ {
		v, err := r.UInt32()
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], v)
		c.data[i] = netip.AddrFrom4(buf)
	}
	return nil
}

// ColIPv6 is a column of IPv6 values: 16 raw bytes.
type ColIPv6 struct{ data []netip.Addr }

func (c *ColIPv6) Type() ColumnType    { return ColumnTypeIPv6 }
func (c *ColIPv6) Rows() int           { return len(c.data) }
func (c *ColIPv6) Reset()              { c.data = c.data[:0] }
func (c *ColIPv6) Row(i int) netip.Addr { return c.data[i] }
func (c *ColIPv6) Append(v netip.Addr) { c.data = append(c.data, v) }

func (c *ColIPv6) EncodeColumn(b *Buffer) {
	for _, v := range c.data {
		a16 := v.As16()
		b.PutRaw(a16[:])
	}
}
func (c *ColIPv6) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *ColIPv6) DecodeColumn(r *Reader, rows int) error {
	c.data = make([]netip.Addr, rows)
	for i := 0; i < rows; i++ {
		buf, err := r.FixedString(16)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		var a [16]byte
		copy(a[:], buf)
		c.data[i] = netip.AddrFrom16(a)
	}
	return nil
}
