package proto

// Column is the capability set every column codec implements: knowledge of
// its own wire type, row count, and the ability to reset and to decode
// itself from a Reader. This is the "small interface capability set"
// design-notes §9 calls for, replacing the source implementation's
// inheritance hierarchy.
type Column interface {
	Type() ColumnType
	Rows() int
	Reset()
	DecodeColumn(r *Reader, rows int) error
}

// ColumnOf is a strongly typed accessor over a Column's decoded values.
type ColumnOf[T any] interface {
	Column
	Row(i int) T
	Append(v T)
}

// ColInput is a Column that can also serialize itself: write its data to a
// Buffer or Writer (a state prefix, where a type has one, is written
// through Preparable). Used for INSERT and
// for the golden-file round-trip tests.
type ColInput interface {
	Column
	EncodeColumn(b *Buffer)
	WriteColumn(w *Writer) error
}

// ColResult is the read-side counterpart; an alias kept distinct from
// Column for readability at call sites that only ever decode.
type ColResult = Column

// Preparable is implemented by columns with a per-column serialization
// prefix (currently only LowCardinality's dictionary-version integer).
type Preparable interface {
	EncodeStatePrefix(b *Buffer, version int)
	DecodeStatePrefix(r *Reader, version int) error
}

// Inferable is implemented by columns whose concrete type depends on the
// server's column descriptor and cannot be known purely from the caller's
// input (e.g. Enum columns supplied as plain strings).
type Inferable interface {
	Infer(t ColumnType) error
}

// ColDesc names and types a single column in a block.
type ColDesc struct {
	Name string
	Type ColumnType
}

// InputColumn pairs a column name with ready-to-write data, used for
// INSERT and external-table payloads.
type InputColumn struct {
	Name string
	Data ColInput
}

// Input is the list of columns a caller supplies for an INSERT.
type Input []InputColumn

// Rows returns the row count of the first column, or 0 if empty.
func (in Input) Rows() int {
	if len(in) == 0 {
		return 0
	}
	return in[0].Data.Rows()
}

// Result resolves, for each column a block describes, the concrete Column
// implementation that should decode its values.
type Result interface {
	Column(idx int, desc ColDesc) (Column, error)
}

// AutoResult decodes every column using the global type registry, without
// requiring the caller to pre-declare names or types. This is the default
// used by Client.Do when the caller provides no typed Result.
type AutoResult struct{}

// Column implements Result.
func (AutoResult) Column(_ int, desc ColDesc) (Column, error) {
	return NewColumn(desc.Type)
}

// ColInfoInput captures the column descriptors of a block (typically the
// empty "sample" block the server sends after an INSERT's QUERY packet) so
// the caller can infer types for its own input columns.
type ColInfoInput []ColDesc

// Column implements Result, recording desc and deferring to the registry so
// the sample block (always zero rows) still decodes without error if the
// server ever sends rows on it.
func (c *ColInfoInput) Column(_ int, desc ColDesc) (Column, error) {
	*c = append(*c, desc)
	return NewColumn(desc.Type)
}
