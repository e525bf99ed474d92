package proto

import "strings"

// ColumnType is the server's textual type-specification string, e.g.
// "Array(Nullable(Decimal(9,2)))".
type ColumnType string

// Primitive column types.
const (
	ColumnTypeNone    ColumnType = ""
	ColumnTypeInt8    ColumnType = "Int8"
	ColumnTypeInt16   ColumnType = "Int16"
	ColumnTypeInt32   ColumnType = "Int32"
	ColumnTypeInt64   ColumnType = "Int64"
	ColumnTypeInt128  ColumnType = "Int128"
	ColumnTypeInt256  ColumnType = "Int256"
	ColumnTypeUInt8   ColumnType = "UInt8"
	ColumnTypeUInt16  ColumnType = "UInt16"
	ColumnTypeUInt32  ColumnType = "UInt32"
	ColumnTypeUInt64  ColumnType = "UInt64"
	ColumnTypeUInt128 ColumnType = "UInt128"
	ColumnTypeUInt256 ColumnType = "UInt256"
	ColumnTypeFloat32 ColumnType = "Float32"
	ColumnTypeFloat64 ColumnType = "Float64"
	ColumnTypeBool    ColumnType = "Bool"
	ColumnTypeString  ColumnType = "String"
	ColumnTypeFixedString ColumnType = "FixedString"
	ColumnTypeUUID    ColumnType = "UUID"
	ColumnTypeDate    ColumnType = "Date"
	ColumnTypeDate32  ColumnType = "Date32"
	ColumnTypeDateTime ColumnType = "DateTime"
	ColumnTypeDateTime64 ColumnType = "DateTime64"
	ColumnTypeIPv4    ColumnType = "IPv4"
	ColumnTypeIPv6    ColumnType = "IPv6"
	ColumnTypeEnum8   ColumnType = "Enum8"
	ColumnTypeEnum16  ColumnType = "Enum16"
	ColumnTypeDecimal ColumnType = "Decimal"
	ColumnTypeDecimal32 ColumnType = "Decimal32"
	ColumnTypeDecimal64 ColumnType = "Decimal64"
	ColumnTypeDecimal128 ColumnType = "Decimal128"
	ColumnTypeDecimal256 ColumnType = "Decimal256"

	ColumnTypeArray          ColumnType = "Array"
	ColumnTypeTuple          ColumnType = "Tuple"
	ColumnTypeNullable       ColumnType = "Nullable"
	ColumnTypeLowCardinality ColumnType = "LowCardinality"
	ColumnTypeMap            ColumnType = "Map"
	ColumnTypeNested         ColumnType = "Nested"
	ColumnTypeSimpleAggregateFunction ColumnType = "SimpleAggregateFunction"
	ColumnTypeObject         ColumnType = "Object"
)

// Array returns the Array(t) type.
func (c ColumnType) Array() ColumnType { return ColumnType("Array(" + string(c) + ")") }

// Nullable returns the Nullable(t) type.
func (c ColumnType) Nullable() ColumnType { return ColumnType("Nullable(" + string(c) + ")") }

// Sub returns base(t), e.g. ColumnTypeArray.Sub(ColumnTypeInt32) == "Array(Int32)".
func (c ColumnType) Sub(t ColumnType) ColumnType {
	return ColumnType(string(c) + "(" + string(t) + ")")
}

// With appends a parenthesised parameter, e.g. DateTime.With("UTC").
func (c ColumnType) With(args ...string) ColumnType {
	if len(args) == 0 {
		return c
	}
	return ColumnType(string(c) + "(" + strings.Join(args, ", ") + ")")
}

// Base returns the outermost type name, stripping any parenthesised
// parameters, e.g. "Decimal(9,2)".Base() == "Decimal".
func (c ColumnType) Base() ColumnType {
	if i := strings.IndexByte(string(c), '('); i >= 0 {
		return c[:i]
	}
	return c
}

// IsArray reports whether c is Array(...).
func (c ColumnType) IsArray() bool { return c.Base() == ColumnTypeArray }

// Elem returns the element type of an Array(t); ColumnTypeNone if c is not
// an array.
func (c ColumnType) Elem() ColumnType {
	if !c.IsArray() {
		return ColumnTypeNone
	}
	s := string(c)
	open := strings.IndexByte(s, '(')
	return ColumnType(s[open+1 : len(s)-1])
}

// normalize strips whitespace after commas so that equivalent type strings
// compare equal, matching the server's own leniency ("Map(String,String)" ==
// "Map(String, String)").
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && i > 0 && s[i-1] == ',' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Conflicts reports whether c and other describe incompatible column types.
// Enum types are considered compatible with their underlying integer type
// and with a bare "Enum8"/"Enum16" (no member list); DateTime is compatible
// regardless of timezone parameter; Decimal256 is compatible with any
// Decimal(p,s) spelling, while the other Decimal aliases (Decimal32 etc.)
// are compared like any other type.
func (c ColumnType) Conflicts(other ColumnType) bool {
	a, b := normalize(string(c)), normalize(string(other))
	if a == b {
		return false
	}
	if a == "" || b == "" {
		return true
	}
	aBase, bBase := ColumnType(a).Base(), ColumnType(b).Base()

	isEnum := func(t ColumnType) bool { return t == ColumnTypeEnum8 || t == ColumnTypeEnum16 }
	if isEnum(aBase) || isEnum(bBase) {
		// A bare Enum8/Enum16 (no member list) is compatible with any
		// concrete Enum8(...)/Enum16(...), and with its underlying
		// signed-integer type.
		if aBase == bBase {
			return false
		}
		if (aBase == ColumnTypeEnum8 && b == "Int8") || (aBase == ColumnTypeEnum16 && b == "Int16") {
			return false
		}
		if (bBase == ColumnTypeEnum8 && a == "Int8") || (bBase == ColumnTypeEnum16 && a == "Int16") {
			return false
		}
		return true
	}

	if aBase == ColumnTypeDateTime && bBase == ColumnTypeDateTime {
		return false
	}

	decimalAlias := map[ColumnType]string{
		ColumnTypeDecimal32:  "Decimal(9,2)",
		ColumnTypeDecimal64:  "Decimal(18,4)",
		ColumnTypeDecimal128: "Decimal(38,9)",
		ColumnTypeDecimal256: "Decimal(76,38)",
	}
	_ = decimalAlias
	if (aBase == ColumnTypeDecimal256 && bBase == ColumnTypeDecimal) ||
		(bBase == ColumnTypeDecimal256 && aBase == ColumnTypeDecimal) {
		return false
	}
	if aBase == ColumnTypeNullable && bBase == ColumnTypeNullable {
		return ColumnType(a[len("Nullable("):len(a)-1]).Conflicts(ColumnType(b[len("Nullable("):len(b)-1]))
	}
	if aBase == ColumnTypeArray && bBase == ColumnTypeArray {
		return c.Elem().Conflicts(other.Elem())
	}

	return true
}
