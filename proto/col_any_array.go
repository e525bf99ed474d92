package proto

import (
	"net/netip"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// anyColAdapter adapts a ColInput whose Row/Append signature is not a Go
// generic parameter to ColInputOf[any], so ColArr[any] can wrap it for
// Array(T) resolved by the type registry. Decoding and encoding are
// delegated to the element column whatever its type. Append accepts
// FixedString, Date family, UUID, IP, big integer, Enum (by name) and
// Decimal elements and panics for any other element column (Tuple, Map,
// Nested, SimpleAggregateFunction, Object('json')). Row goes through
// columnRowAny, which returns nil for big integers and those composites.
//
// This does not cover Array(Array(T)), Array(Nullable(T)) or
// Array(LowCardinality(T)): those require a type parameter matching the
// inner element, which the registry cannot select purely from a runtime
// Column value without reflection over every instantiation. Build those
// directly with NewArray[T] when an exact type is known at compile time.
type anyColAdapter struct{ Inner ColInput }

func (a anyColAdapter) Type() ColumnType             { return a.Inner.Type() }
func (a anyColAdapter) Rows() int                     { return a.Inner.Rows() }
func (a anyColAdapter) Reset()                        { a.Inner.Reset() }
func (a anyColAdapter) Row(i int) any                 { return columnRowAny(a.Inner, i) }
func (a anyColAdapter) EncodeColumn(b *Buffer)        { a.Inner.EncodeColumn(b) }
func (a anyColAdapter) WriteColumn(w *Writer) error   { return a.Inner.WriteColumn(w) }
func (a anyColAdapter) DecodeColumn(r *Reader, n int) error { return a.Inner.DecodeColumn(r, n) }

func (a anyColAdapter) Append(v any) {
	switch c := a.Inner.(type) {
	case *ColFixedStr:
		c.Append(v.([]byte))
	case *ColDate:
		c.Append(v.(time.Time))
	case *ColDate32:
		c.Append(v.(time.Time))
	case *ColDateTime:
		c.Append(v.(time.Time))
	case *ColDateTime64:
		c.Append(v.(time.Time))
	case *ColUUID:
		c.Append(v.(uuid.UUID))
	case *ColIPv4:
		c.Append(v.(netip.Addr))
	case *ColIPv6:
		c.Append(v.(netip.Addr))
	case *colFixedBytes[Int128]:
		c.Append(v.(Int128))
	case *colFixedBytes[Int256]:
		c.Append(v.(Int256))
	case *colFixedBytes[UInt128]:
		c.Append(v.(UInt128))
	case *colFixedBytes[UInt256]:
		c.Append(v.(UInt256))
	case *ColEnum8:
		c.AppendName(v.(string))
	case *ColEnum16:
		c.AppendName(v.(string))
	case *ColDecimal32:
		_ = c.Append(v.(Decimal))
	case *ColDecimal64:
		_ = c.Append(v.(Decimal))
	case *ColDecimal128:
		_ = c.Append(v.(Decimal))
	case *ColDecimal256:
		_ = c.Append(v.(Decimal))
	default:
		panic(errors.Errorf("anyColAdapter: unsupported element type %T", a.Inner))
	}
}

// newHeteroArray builds Array(T) over an element column whose Row/Append
// types aren't a bare Go primitive, via anyColAdapter.
func newHeteroArray(inner ColInput) Column {
	return NewArray[any](anyColAdapter{Inner: inner})
}
