package proto

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// geoAliases expand transparently to their Tuple/Array spelling before
// parsing, per spec.md §9.
var geoAliases = map[string]string{
	"Point":        "Tuple(Float64, Float64)",
	"Ring":         "Array(Tuple(Float64, Float64))",
	"Polygon":      "Array(Array(Tuple(Float64, Float64)))",
	"MultiPolygon": "Array(Array(Array(Tuple(Float64, Float64))))",
}

// NewColumn resolves a column-descriptor type-specification string to a
// ready-to-decode Column, recursively for composite types. This is the
// registry spec.md §9 describes: leading tokens select a composite
// factory, otherwise an exact lookup resolves a primitive type.
func NewColumn(t ColumnType) (Column, error) {
	spec := strings.TrimSpace(string(t))
	if alias, ok := geoAliases[spec]; ok {
		return NewColumn(ColumnType(alias))
	}

	base := string(ColumnType(spec).Base())

	switch base {
	case "Int8":
		return ColInt8(), nil
	case "Int16":
		return ColInt16(), nil
	case "Int32":
		return ColInt32(), nil
	case "Int64":
		return ColInt64(), nil
	case "UInt8":
		return ColUInt8(), nil
	case "UInt16":
		return ColUInt16(), nil
	case "UInt32":
		return ColUInt32(), nil
	case "UInt64":
		return ColUInt64(), nil
	case "Int128":
		return ColInt128(), nil
	case "Int256":
		return ColInt256(), nil
	case "UInt128":
		return ColUInt128(), nil
	case "UInt256":
		return ColUInt256(), nil
	case "Float32":
		return ColFloat32(), nil
	case "Float64":
		return ColFloat64(), nil
	case "Bool", "Boolean":
		return new(ColBool), nil
	case "String":
		return new(ColStr), nil
	case "FixedString":
		n, err := parseIntArg(spec)
		if err != nil {
			return nil, errors.Wrap(err, "FixedString")
		}
		return &ColFixedStr{Size: n}, nil
	case "UUID":
		return new(ColUUID), nil
	case "IPv4":
		return new(ColIPv4), nil
	case "IPv6":
		return new(ColIPv6), nil
	case "Date":
		return new(ColDate), nil
	case "Date32":
		return new(ColDate32), nil
	case "DateTime":
		loc := ""
		if args := parseArgs(spec); len(args) == 1 {
			loc = strings.Trim(args[0], "'")
		}
		return &ColDateTime{Location: loc}, nil
	case "DateTime64":
		args := parseArgs(spec)
		if len(args) == 0 {
			return nil, errors.New("DateTime64 requires a precision argument")
		}
		prec, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return nil, errors.Wrap(err, "DateTime64 precision")
		}
		loc := ""
		if len(args) > 1 {
			loc = strings.Trim(strings.TrimSpace(args[1]), "'")
		}
		return &ColDateTime64{Precision: prec, Location: loc}, nil
	case "Enum8":
		members, err := parseEnumValues(spec)
		if err != nil {
			return nil, errors.Wrap(err, "Enum8")
		}
		return NewEnum8(members), nil
	case "Enum16":
		members, err := parseEnumValues(spec)
		if err != nil {
			return nil, errors.Wrap(err, "Enum16")
		}
		return NewEnum16(members), nil
	case "Decimal":
		args := parseArgs(spec)
		if len(args) != 2 {
			return nil, errors.New("Decimal requires precision and scale")
		}
		p, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return nil, errors.Wrap(err, "Decimal precision")
		}
		s, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return nil, errors.Wrap(err, "Decimal scale")
		}
		return newDecimalForPrecision(p, s), nil
	case "Decimal32":
		p, s, err := parseTwoInts(spec)
		if err != nil {
			return nil, err
		}
		return NewDecimal32(p, s), nil
	case "Decimal64":
		p, s, err := parseTwoInts(spec)
		if err != nil {
			return nil, err
		}
		return NewDecimal64(p, s), nil
	case "Decimal128":
		p, s, err := parseTwoInts(spec)
		if err != nil {
			return nil, err
		}
		return NewDecimal128(p, s), nil
	case "Decimal256":
		p, s, err := parseTwoInts(spec)
		if err != nil {
			return nil, err
		}
		return NewDecimal256(p, s), nil

	case "Array":
		inner, err := NewColumn(t.Elem())
		if err != nil {
			return nil, errors.Wrap(err, "Array elem")
		}
		return wrapArray(inner)
	case "Nullable":
		inner, err := NewColumn(ColumnType(innerArgs(spec)))
		if err != nil {
			return nil, errors.Wrap(err, "Nullable elem")
		}
		return wrapNullable(inner)
	case "LowCardinality":
		inner, err := NewColumn(ColumnType(innerArgs(spec)))
		if err != nil {
			return nil, errors.Wrap(err, "LowCardinality elem")
		}
		return wrapLowCardinality(inner)
	case "Tuple":
		parts := splitTopLevel(innerArgs(spec), ',')
		elems := make([]ColInput, len(parts))
		for i, p := range parts {
			col, err := NewColumn(ColumnType(strings.TrimSpace(p)))
			if err != nil {
				return nil, errors.Wrapf(err, "Tuple elem %d", i)
			}
			ci, ok := col.(ColInput)
			if !ok {
				return nil, errors.Errorf("Tuple elem %d: %T is not a ColInput", i, col)
			}
			elems[i] = ci
		}
		return NewTuple(elems...), nil
	case "Map":
		parts := splitTopLevel(innerArgs(spec), ',')
		if len(parts) != 2 {
			return nil, errors.New("Map requires exactly two type arguments")
		}
		key, err := NewColumn(ColumnType(strings.TrimSpace(parts[0])))
		if err != nil {
			return nil, errors.Wrap(err, "Map key")
		}
		value, err := NewColumn(ColumnType(strings.TrimSpace(parts[1])))
		if err != nil {
			return nil, errors.Wrap(err, "Map value")
		}
		keyCI, ok := key.(ColInput)
		if !ok {
			return nil, errors.Errorf("Map key: %T is not a ColInput", key)
		}
		valueCI, ok := value.(ColInput)
		if !ok {
			return nil, errors.Errorf("Map value: %T is not a ColInput", value)
		}
		return NewMap(keyCI, valueCI), nil
	case "Nested":
		parts := splitTopLevel(innerArgs(spec), ',')
		names := make([]string, len(parts))
		elems := make([]ColInput, len(parts))
		for i, p := range parts {
			fields := strings.Fields(strings.TrimSpace(p))
			if len(fields) < 2 {
				return nil, errors.Errorf("Nested field %q missing type", p)
			}
			names[i] = fields[0]
			col, err := NewColumn(ColumnType(strings.Join(fields[1:], " ")))
			if err != nil {
				return nil, errors.Wrapf(err, "Nested field %q", fields[0])
			}
			ci, ok := col.(ColInput)
			if !ok {
				return nil, errors.Errorf("Nested field %q: %T is not a ColInput", fields[0], col)
			}
			elems[i] = ci
		}
		return NewNested(names, elems...), nil
	case "SimpleAggregateFunction":
		parts := splitTopLevel(innerArgs(spec), ',')
		if len(parts) != 2 {
			return nil, errors.New("SimpleAggregateFunction requires function name and type")
		}
		inner, err := NewColumn(ColumnType(strings.TrimSpace(parts[1])))
		if err != nil {
			return nil, errors.Wrap(err, "SimpleAggregateFunction inner")
		}
		innerCI, ok := inner.(ColInput)
		if !ok {
			return nil, errors.Errorf("SimpleAggregateFunction inner: %T is not a ColInput", inner)
		}
		return NewSimpleAggregateFunction(strings.TrimSpace(parts[0]), innerCI), nil
	case "Object":
		// Object('json'): the inner type spec is delegated by the server per
		// row-set, but callers that need to decode ahead of time should use
		// a concrete Result rather than relying on auto-inference here.
		return nil, errors.New("Object('json') requires an explicit inner column; use NewObjectJSON")
	}

	return nil, errors.Errorf("unknown column type %q", spec)
}

// wrapArray, wrapNullable and wrapLowCardinality bridge the untyped Column
// returned by recursive resolution into the generic composite wrappers,
// which need a concrete element type parameter.
func wrapArray(inner Column) (Column, error) {
	ci, ok := inner.(ColInput)
	if !ok {
		return nil, errors.Errorf("Array elem %T is not a ColInput", inner)
	}
	switch v := ci.(type) {
	case *ColNum[int8]:
		return NewArray[int8](v), nil
	case *ColNum[int16]:
		return NewArray[int16](v), nil
	case *ColNum[int32]:
		return NewArray[int32](v), nil
	case *ColNum[int64]:
		return NewArray[int64](v), nil
	case *ColNum[uint8]:
		return NewArray[uint8](v), nil
	case *ColNum[uint16]:
		return NewArray[uint16](v), nil
	case *ColNum[uint32]:
		return NewArray[uint32](v), nil
	case *ColNum[uint64]:
		return NewArray[uint64](v), nil
	case *ColNum[float32]:
		return NewArray[float32](v), nil
	case *ColNum[float64]:
		return NewArray[float64](v), nil
	case *ColBool:
		return NewArray[bool](v), nil
	case *ColStr:
		return NewArray[string](v), nil
	default:
		return newHeteroArray(ci), nil
	}
}

func wrapNullable(inner Column) (Column, error) {
	ci, ok := inner.(ColInput)
	if !ok {
		return nil, errors.Errorf("Nullable elem %T is not a ColInput", inner)
	}
	switch v := ci.(type) {
	case *ColNum[int8]:
		return NewNullable[int8](v), nil
	case *ColNum[int16]:
		return NewNullable[int16](v), nil
	case *ColNum[int32]:
		return NewNullable[int32](v), nil
	case *ColNum[int64]:
		return NewNullable[int64](v), nil
	case *ColNum[uint8]:
		return NewNullable[uint8](v), nil
	case *ColNum[uint16]:
		return NewNullable[uint16](v), nil
	case *ColNum[uint32]:
		return NewNullable[uint32](v), nil
	case *ColNum[uint64]:
		return NewNullable[uint64](v), nil
	case *ColNum[float32]:
		return NewNullable[float32](v), nil
	case *ColNum[float64]:
		return NewNullable[float64](v), nil
	case *ColBool:
		return NewNullable[bool](v), nil
	case *ColStr:
		return NewNullable[string](v), nil
	default:
		return nil, errors.Errorf("Nullable(%T) is not supported by the generic registry; build it directly", inner)
	}
}

func wrapLowCardinality(inner Column) (Column, error) {
	ci, ok := inner.(ColInput)
	if !ok {
		return nil, errors.Errorf("LowCardinality elem %T is not a ColInput", inner)
	}
	switch v := ci.(type) {
	case *ColStr:
		return NewLowCardinality[string](v), nil
	case *ColNum[int8]:
		return NewLowCardinality[int8](v), nil
	case *ColNum[int16]:
		return NewLowCardinality[int16](v), nil
	case *ColNum[int32]:
		return NewLowCardinality[int32](v), nil
	case *ColNum[int64]:
		return NewLowCardinality[int64](v), nil
	case *ColNum[uint8]:
		return NewLowCardinality[uint8](v), nil
	case *ColNum[uint16]:
		return NewLowCardinality[uint16](v), nil
	case *ColNum[uint32]:
		return NewLowCardinality[uint32](v), nil
	case *ColNum[uint64]:
		return NewLowCardinality[uint64](v), nil
	// LowCardinality(Nullable(T)): per spec.md §4.C this folds nullability
	// into the dictionary (slot 0 = NULL) rather than wrapping the already-
	// built ColNullable, so the inner non-nullable data column is unwrapped
	// from it here.
	case *ColNullable[string]:
		return NewLowCardinalityNullable[string](v.Data), nil
	case *ColNullable[int8]:
		return NewLowCardinalityNullable[int8](v.Data), nil
	case *ColNullable[int16]:
		return NewLowCardinalityNullable[int16](v.Data), nil
	case *ColNullable[int32]:
		return NewLowCardinalityNullable[int32](v.Data), nil
	case *ColNullable[int64]:
		return NewLowCardinalityNullable[int64](v.Data), nil
	case *ColNullable[uint8]:
		return NewLowCardinalityNullable[uint8](v.Data), nil
	case *ColNullable[uint16]:
		return NewLowCardinalityNullable[uint16](v.Data), nil
	case *ColNullable[uint32]:
		return NewLowCardinalityNullable[uint32](v.Data), nil
	case *ColNullable[uint64]:
		return NewLowCardinalityNullable[uint64](v.Data), nil
	default:
		return nil, errors.Errorf("LowCardinality(%T) is not supported by the generic registry; build it directly", inner)
	}
}

func parseArgs(spec string) []string {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return nil
	}
	body := spec[open+1 : len(spec)-1]
	parts := splitTopLevel(body, ',')
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func innerArgs(spec string) string {
	open := strings.IndexByte(spec, '(')
	return spec[open+1 : len(spec)-1]
}

func parseIntArg(spec string) (int, error) {
	args := parseArgs(spec)
	if len(args) != 1 {
		return 0, errors.New("expected exactly one integer argument")
	}
	return strconv.Atoi(args[0])
}

func parseTwoInts(spec string) (int, int, error) {
	args := parseArgs(spec)
	if len(args) != 2 {
		return 0, 0, errors.New("expected precision and scale arguments")
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errors.Wrap(err, "precision")
	}
	s, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errors.Wrap(err, "scale")
	}
	return p, s, nil
}

// newDecimalForPrecision resolves the bare Decimal(p,s) spelling to the
// narrowest backing width that can hold p significant digits.
func newDecimalForPrecision(p, s int) Column {
	switch {
	case p <= 9:
		return NewDecimal32(p, s)
	case p <= 18:
		return NewDecimal64(p, s)
	case p <= 38:
		return NewDecimal128(p, s)
	default:
		return NewDecimal256(p, s)
	}
}
