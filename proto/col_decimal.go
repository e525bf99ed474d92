package proto

import (
	"math"
	"math/big"

	"github.com/go-faster/errors"
)

// decimalMaxPrecision is the maximum number of significant decimal digits
// representable by each underlying integer width, per spec.md §4.C.
var decimalMaxPrecision = map[int]int{32: 9, 64: 18, 128: 38, 256: 76}

// ErrDecimalPrecision is returned when a value needs more digits than its
// underlying width supports.
var ErrDecimalPrecision = errors.New("decimal: value exceeds precision for underlying width")

// Decimal is a fixed-point decimal value: Unscaled * 10^-Scale.
type Decimal struct {
	Unscaled *big.Int
	Scale    int
}

// Float64 approximates the decimal as a float64.
func (d Decimal) Float64() float64 {
	f := new(big.Float).SetInt(d.Unscaled)
	scale := new(big.Float).SetFloat64(math.Pow10(d.Scale))
	f.Quo(f, scale)
	v, _ := f.Float64()
	return v
}

// NewDecimalFromFloat builds a Decimal by rounding v to scale decimal
// places, per spec.md §4.C ("values are integers = round(value * 10^s)").
func NewDecimalFromFloat(v float64, scale int) Decimal {
	scaled := v * math.Pow10(scale)
	rounded := math.Round(scaled)
	bi, _ := big.NewFloat(rounded).Int(nil)
	return Decimal{Unscaled: bi, Scale: scale}
}

func checkPrecision(width, precision int, unscaled *big.Int) error {
	maxDigits := decimalMaxPrecision[width]
	if precision > maxDigits {
		return errors.Wrapf(ErrDecimalPrecision, "precision %d exceeds max %d for Decimal%d", precision, maxDigits, width)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(maxDigits)), nil)
	abs := new(big.Int).Abs(unscaled)
	if abs.Cmp(limit) >= 0 {
		return errors.Wrapf(ErrDecimalPrecision, "value has more than %d significant digits", maxDigits)
	}
	return nil
}

// ColDecimal32 is Decimal32(precision, scale), backed by Int32.
type ColDecimal32 struct {
	Precision, Scale int
	inner            ColNum[int32]
}

func NewDecimal32(precision, scale int) *ColDecimal32 {
	return &ColDecimal32{Precision: precision, Scale: scale, inner: *ColInt32()}
}

func (c *ColDecimal32) Type() ColumnType {
	return ColumnTypeDecimal32.With(itoa(c.Precision), itoa(c.Scale))
}
func (c *ColDecimal32) Rows() int { return c.inner.Rows() }
func (c *ColDecimal32) Reset()    { c.inner.Reset() }
func (c *ColDecimal32) Row(i int) Decimal {
	return Decimal{Unscaled: big.NewInt(int64(c.inner.Row(i))), Scale: c.Scale}
}
func (c *ColDecimal32) Append(v Decimal) error {
	if err := checkPrecision(32, c.Precision, v.Unscaled); err != nil {
		return err
	}
	c.inner.Append(int32(v.Unscaled.Int64()))
	return nil
}
func (c *ColDecimal32) EncodeColumn(b *Buffer)              { c.inner.EncodeColumn(b) }
func (c *ColDecimal32) WriteColumn(w *Writer) error         { return c.inner.WriteColumn(w) }
func (c *ColDecimal32) DecodeColumn(r *Reader, n int) error { return c.inner.DecodeColumn(r, n) }

// ColDecimal64 is Decimal64(precision, scale), backed by Int64.
type ColDecimal64 struct {
	Precision, Scale int
	inner            ColNum[int64]
}

func NewDecimal64(precision, scale int) *ColDecimal64 {
	return &ColDecimal64{Precision: precision, Scale: scale, inner: *ColInt64()}
}

func (c *ColDecimal64) Type() ColumnType {
	return ColumnTypeDecimal64.With(itoa(c.Precision), itoa(c.Scale))
}
func (c *ColDecimal64) Rows() int { return c.inner.Rows() }
func (c *ColDecimal64) Reset()    { c.inner.Reset() }
func (c *ColDecimal64) Row(i int) Decimal {
	return Decimal{Unscaled: big.NewInt(c.inner.Row(i)), Scale: c.Scale}
}
func (c *ColDecimal64) Append(v Decimal) error {
	if err := checkPrecision(64, c.Precision, v.Unscaled); err != nil {
		return err
	}
	c.inner.Append(v.Unscaled.Int64())
	return nil
}
func (c *ColDecimal64) EncodeColumn(b *Buffer)              { c.inner.EncodeColumn(b) }
func (c *ColDecimal64) WriteColumn(w *Writer) error         { return c.inner.WriteColumn(w) }
func (c *ColDecimal64) DecodeColumn(r *Reader, n int) error { return c.inner.DecodeColumn(r, n) }

// ColDecimal128 is Decimal128(precision, scale), backed by Int128.
type ColDecimal128 struct {
	Precision, Scale int
	inner            colFixedBytes[Int128]
}

func NewDecimal128(precision, scale int) *ColDecimal128 {
	return &ColDecimal128{Precision: precision, Scale: scale, inner: colFixedBytes[Int128]{typ: ColumnTypeInt128, size: 16}}
}
func (c *ColDecimal128) Type() ColumnType {
	return ColumnTypeDecimal128.With(itoa(c.Precision), itoa(c.Scale))
}
func (c *ColDecimal128) Rows() int { return c.inner.Rows() }
func (c *ColDecimal128) Reset()    { c.inner.Reset() }
func (c *ColDecimal128) Row(i int) Decimal {
	return Decimal{Unscaled: c.inner.Row(i).BigInt(), Scale: c.Scale}
}
func (c *ColDecimal128) Append(v Decimal) error {
	if err := checkPrecision(128, c.Precision, v.Unscaled); err != nil {
		return err
	}
	c.inner.Append(Int128FromBigInt(v.Unscaled))
	return nil
}
func (c *ColDecimal128) EncodeColumn(b *Buffer)              { c.inner.EncodeColumn(b) }
func (c *ColDecimal128) WriteColumn(w *Writer) error         { return c.inner.WriteColumn(w) }
func (c *ColDecimal128) DecodeColumn(r *Reader, n int) error { return c.inner.DecodeColumn(r, n) }

// ColDecimal256 is Decimal256(precision, scale), backed by Int256.
type ColDecimal256 struct {
	Precision, Scale int
	inner            colFixedBytes[Int256]
}

func NewDecimal256(precision, scale int) *ColDecimal256 {
	return &ColDecimal256{Precision: precision, Scale: scale, inner: colFixedBytes[Int256]{typ: ColumnTypeInt256, size: 32}}
}
func (c *ColDecimal256) Type() ColumnType {
	return ColumnTypeDecimal256.With(itoa(c.Precision), itoa(c.Scale))
}
func (c *ColDecimal256) Rows() int { return c.inner.Rows() }
func (c *ColDecimal256) Reset()    { c.inner.Reset() }
func (c *ColDecimal256) Row(i int) Decimal {
	return Decimal{Unscaled: c.inner.Row(i).BigInt(), Scale: c.Scale}
}
func (c *ColDecimal256) Append(v Decimal) error {
	if err := checkPrecision(256, c.Precision, v.Unscaled); err != nil {
		return err
	}
	c.inner.Append(Int256FromBigInt(v.Unscaled))
	return nil
}
func (c *ColDecimal256) EncodeColumn(b *Buffer)              { c.inner.EncodeColumn(b) }
func (c *ColDecimal256) WriteColumn(w *Writer) error         { return c.inner.WriteColumn(w) }
func (c *ColDecimal256) DecodeColumn(r *Reader, n int) error { return c.inner.DecodeColumn(r, n) }
