package proto

import (
	"io"
	"math"

	"github.com/go-faster/errors"

	"github.com/nativeproto/ch/compress"
)

// defaultReadBufSize is the chunk size pulled from the transport on refill.
const defaultReadBufSize = 128 * 1024

// Reader implements the buffered-read half of the framing I/O primitives:
// varints, length-prefixed strings, fixed strings, and fixed-width integers.
//
// Reader can transparently switch to reading from a compressed block stream
// via EnableCompression/DisableCompression, matching the native protocol's
// "compressible" packets.
type Reader struct {
	raw  io.Reader
	cur  io.Reader // raw, or a *compress.Reader when compression is enabled
	comp *compress.Reader

	buf []byte
	pos int
	end int
}

// NewReader creates a Reader pulling from r.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{
		raw: r,
		buf: make([]byte, defaultReadBufSize),
	}
	rd.cur = r
	return rd
}

// EnableCompression switches the Reader to decode compressed frames from the
// raw transport until DisableCompression is called.
func (r *Reader) EnableCompression() {
	if r.comp == nil {
		r.comp = compress.NewReader(r.raw)
	}
	r.cur = r.comp
	r.pos, r.end = 0, 0
}

// DisableCompression switches the Reader back to the raw transport. Any
// buffered compressed bytes not yet consumed are discarded, matching the
// protocol invariant that a compressed block is always read to completion
// before the next plain packet begins.
func (r *Reader) DisableCompression() {
	r.comp = nil
	r.cur = r.raw
	r.pos, r.end = 0, 0
}

func (r *Reader) fill() error {
	n, err := r.cur.Read(r.buf)
	if n == 0 && err != nil {
		return err
	}
	r.pos, r.end = 0, n
	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= r.end {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadFull reads exactly len(p) bytes, refilling across buffer boundaries.
func (r *Reader) ReadFull(p []byte) error {
	n := 0
	for n < len(p) {
		if r.pos >= r.end {
			if err := r.fill(); err != nil {
				if n > 0 && err == io.EOF {
					return io.ErrUnexpectedEOF
				}
				return err
			}
		}
		c := copy(p[n:], r.buf[r.pos:r.end])
		r.pos += c
		n += c
	}
	return nil
}

// UVarInt reads a LEB128-encoded unsigned varint.
func (r *Reader) UVarInt() (uint64, error) {
	var (
		x uint64
		s uint
	)
	for i := 0; i < 10; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "read byte")
		}
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, errors.New("varint overflows uint64")
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, errors.New("varint too long")
}

// Int reads a varint-encoded length or small integer.
func (r *Reader) Int() (int, error) {
	v, err := r.UVarInt()
	return int(v), err
}

// Bool reads a single byte as a boolean.
func (r *Reader) Bool() (bool, error) {
	v, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// StrBytes reads a varint length prefix followed by the raw bytes.
func (r *Reader) StrBytes() ([]byte, error) {
	n, err := r.Int()
	if err != nil {
		return nil, errors.Wrap(err, "length")
	}
	buf := make([]byte, n)
	if err := r.ReadFull(buf); err != nil {
		return nil, errors.Wrap(err, "data")
	}
	return buf, nil
}

// Str reads a length-prefixed string, decoded as UTF-8.
func (r *Reader) Str() (string, error) {
	b, err := r.StrBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FixedString reads exactly n bytes verbatim.
func (r *Reader) FixedString(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// UInt8 reads a single unsigned byte.
func (r *Reader) UInt8() (uint8, error) { return r.ReadByte() }

// Int8 reads a single signed byte.
func (r *Reader) Int8() (int8, error) {
	v, err := r.ReadByte()
	return int8(v), err
}

// UInt16 reads a little-endian uint16.
func (r *Reader) UInt16() (uint16, error) {
	var buf [2]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// Int16 reads a little-endian int16.
func (r *Reader) Int16() (int16, error) {
	v, err := r.UInt16()
	return int16(v), err
}

// UInt32 reads a little-endian uint32.
func (r *Reader) UInt32() (uint32, error) {
	var buf [4]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.UInt32()
	return int32(v), err
}

// UInt64 reads a little-endian uint64.
func (r *Reader) UInt64() (uint64, error) {
	var buf [8]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v, nil
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.UInt64()
	return int64(v), err
}

// UInt128 reads two little-endian uint64 halves, low then high.
func (r *Reader) UInt128() (lo, hi uint64, err error) {
	if lo, err = r.UInt64(); err != nil {
		return 0, 0, err
	}
	if hi, err = r.UInt64(); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// Float32 reads an IEEE 754 little-endian float32.
func (r *Reader) Float32() (float32, error) {
	v, err := r.UInt32()
	return math.Float32frombits(v), err
}

// Float64 reads an IEEE 754 little-endian float64.
func (r *Reader) Float64() (float64, error) {
	v, err := r.UInt64()
	return math.Float64frombits(v), err
}
