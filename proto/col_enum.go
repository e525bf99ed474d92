package proto

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// EnumValue is one member of an Enum8/Enum16 declaration.
type EnumValue struct {
	Name  string
	Value int16
}

// parseEnumValues parses the member list out of a type spec like
// "Enum8('a' = 1, 'b' = 2)".
func parseEnumValues(spec string) ([]EnumValue, error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return nil, nil // bare Enum8/Enum16, no member list
	}
	body := spec[open+1 : len(spec)-1]
	var out []EnumValue
	for _, part := range splitTopLevel(body, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.LastIndexByte(part, '=')
		if eq < 0 {
			return nil, errors.Errorf("invalid enum member %q", part)
		}
		name := strings.Trim(strings.TrimSpace(part[:eq]), "'")
		val, err := strconv.ParseInt(strings.TrimSpace(part[eq+1:]), 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "enum value %q", part)
		}
		out = append(out, EnumValue{Name: name, Value: int16(val)})
	}
	return out, nil
}

// colEnum backs both Enum8 and Enum16, differing only in underlying width.
type colEnum struct {
	base    ColumnType // ColumnTypeEnum8 or ColumnTypeEnum16
	members []EnumValue
	byName  map[string]int16
	byValue map[int16]string

	values []int16
}

func newColEnum(base ColumnType, members []EnumValue) *colEnum {
	c := &colEnum{base: base, members: members, byName: map[string]int16{}, byValue: map[int16]string{}}
	for _, m := range members {
		c.byName[m.Name] = m.Value
		c.byValue[m.Value] = m.Name
	}
	return c
}

func (c *colEnum) Type() ColumnType {
	if len(c.members) == 0 {
		return c.base
	}
	parts := make([]string, len(c.members))
	for i, m := range c.members {
		parts[i] = "'" + m.Name + "' = " + strconv.Itoa(int(m.Value))
	}
	return c.base.With(strings.Join(parts, ", "))
}
func (c *colEnum) Rows() int      { return len(c.values) }
func (c *colEnum) Reset()         { c.values = c.values[:0] }
func (c *colEnum) RowValue(i int) int16 { return c.values[i] }

// RowName returns the member name for row i, or the raw numeric value
// rendered as a string if it has no declared member (forward
// compatibility with enums evolved on the server).
func (c *colEnum) RowName(i int) string {
	if n, ok := c.byValue[c.values[i]]; ok {
		return n
	}
	return strconv.Itoa(int(c.values[i]))
}

// AppendName appends by member name.
func (c *colEnum) AppendName(name string) error {
	v, ok := c.byName[name]
	if !ok {
		return errors.Errorf("unknown enum member %q", name)
	}
	c.values = append(c.values, v)
	return nil
}

func (c *colEnum) AppendValue(v int16) { c.values = append(c.values, v) }

func (c *colEnum) EncodeColumn(b *Buffer) {
	for _, v := range c.values {
		if c.base == ColumnTypeEnum8 {
			b.PutInt8(int8(v))
		} else {
			b.PutInt16(v)
		}
	}
}
func (c *colEnum) WriteColumn(w *Writer) error { w.ChainBuffer(c.EncodeColumn); return nil }

func (c *colEnum) DecodeColumn(r *Reader, rows int) error {
	c.values = make([]int16, rows)
	for i := 0; i < rows; i++ {
		if c.base == ColumnTypeEnum8 {
			v, err := r.Int8()
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			c.values[i] = int16(v)
		} else {
			v, err := r.Int16()
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			c.values[i] = v
		}
	}
	return nil
}

// ColEnum8 is a column of Enum8 values.
type ColEnum8 struct{ colEnum }

// NewEnum8 constructs a ColEnum8 with the given member list.
func NewEnum8(members []EnumValue) *ColEnum8 { return &ColEnum8{*newColEnum(ColumnTypeEnum8, members)} }

// ColEnum16 is a column of Enum16 values.
type ColEnum16 struct{ colEnum }

// NewEnum16 constructs a ColEnum16 with the given member list.
func NewEnum16(members []EnumValue) *ColEnum16 {
	return &ColEnum16{*newColEnum(ColumnTypeEnum16, members)}
}

// splitTopLevel splits s on sep, ignoring occurrences inside single-quoted
// strings or nested parens — needed because enum member names or nested
// type parameters may themselves contain the separator.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		default:
			if s[i] == sep && depth == 0 && !inQuote {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
