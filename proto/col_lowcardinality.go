package proto

import "github.com/go-faster/errors"

// lowCardinality key-serialization flags, embedded in the index-type word of
// the state prefix the server expects before the dictionary and keys.
const (
	lowCardinalityKeyUInt8 = 0
	lowCardinalityKeyUInt16 = 1
	lowCardinalityKeyUInt32 = 2
	lowCardinalityKeyUInt64 = 3

	lowCardinalityNeedGlobalDictionaryBit = 1 << 8
	lowCardinalityHasAdditionalKeysBit    = 1 << 9
	lowCardinalityNeedUpdateDictionary    = 1 << 10

	lowCardinalityVersion = 1
)

// ColLowCardinality implements LowCardinality(T): a dictionary of distinct
// values (Data) plus, per row, an integer key into that dictionary. The key
// integer width is chosen to fit the dictionary size and grows as values are
// appended, up to UInt64, the widest key width, which is used for any
// larger dictionary.
type ColLowCardinality[T comparable] struct {
	Data  ColInputOf[T]
	index map[T]uint64
	keys  []uint64
}

// NewLowCardinality wraps data (initially empty) as LowCardinality(data.Type()).
func NewLowCardinality[T comparable](data ColInputOf[T]) *ColLowCardinality[T] {
	return &ColLowCardinality[T]{Data: data, index: map[T]uint64{}}
}

func (c *ColLowCardinality[T]) Type() ColumnType {
	return ColumnTypeLowCardinality.Sub(c.Data.Type())
}
func (c *ColLowCardinality[T]) Rows() int { return len(c.keys) }

func (c *ColLowCardinality[T]) Reset() {
	c.keys = c.keys[:0]
	c.index = map[T]uint64{}
	c.Data.Reset()
}

func (c *ColLowCardinality[T]) Row(i int) T { return c.Data.Row(int(c.keys[i])) }

// Append adds v, reusing its dictionary entry if v was already seen.
func (c *ColLowCardinality[T]) Append(v T) {
	key, ok := c.index[v]
	if !ok {
		key = uint64(c.Data.Rows())
		c.Data.Append(v)
		c.index[v] = key
	}
	c.keys = append(c.keys, key)
}

// keyWidth returns the minimal index-type flag covering the current
// dictionary size, per the native LowCardinality key-selection rule.
func (c *ColLowCardinality[T]) keyWidth() int {
	n := uint64(c.Data.Rows())
	switch {
	case n <= 1<<8:
		return lowCardinalityKeyUInt8
	case n <= 1<<16:
		return lowCardinalityKeyUInt16
	case n <= 1<<32:
		return lowCardinalityKeyUInt32
	default:
		return lowCardinalityKeyUInt64
	}
}

// EncodeStatePrefix implements Preparable: LowCardinality carries a single
// version integer ahead of every block's column data.
func (c *ColLowCardinality[T]) EncodeStatePrefix(b *Buffer, _ int) {
	b.PutUInt64(lowCardinalityVersion)
}

func (c *ColLowCardinality[T]) DecodeStatePrefix(r *Reader, _ int) error {
	_, err := r.UInt64()
	return err
}

func (c *ColLowCardinality[T]) EncodeColumn(b *Buffer) {
	width := c.keyWidth()
	flags := uint64(width) | lowCardinalityHasAdditionalKeysBit | lowCardinalityNeedUpdateDictionary
	b.PutUInt64(flags)
	b.PutUInt64(uint64(c.Data.Rows()))
	c.Data.EncodeColumn(b)
	b.PutUInt64(uint64(len(c.keys)))
	for _, k := range c.keys {
		putLowCardinalityKey(b, width, k)
	}
}

func putLowCardinalityKey(b *Buffer, width int, k uint64) {
	switch width {
	case lowCardinalityKeyUInt8:
		b.PutUInt8(uint8(k))
	case lowCardinalityKeyUInt16:
		b.PutUInt16(uint16(k))
	case lowCardinalityKeyUInt32:
		b.PutUInt32(uint32(k))
	default:
		b.PutUInt64(k)
	}
}

func (c *ColLowCardinality[T]) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColLowCardinality[T]) DecodeColumn(r *Reader, rows int) error {
	flags, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "flags")
	}
	width := int(flags & 0xff)
	dictSize, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "dict size")
	}
	if err := c.Data.DecodeColumn(r, int(dictSize)); err != nil {
		return errors.Wrap(err, "dictionary")
	}
	n, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "key count")
	}
	if int(n) != rows {
		return errors.Errorf("key count %d does not match block rows %d", n, rows)
	}
	c.keys = make([]uint64, rows)
	for i := 0; i < rows; i++ {
		k, err := readLowCardinalityKey(r, width)
		if err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
		c.keys[i] = k
	}
	return nil
}

func readLowCardinalityKey(r *Reader, width int) (uint64, error) {
	switch width {
	case lowCardinalityKeyUInt8:
		v, err := r.UInt8()
		return uint64(v), err
	case lowCardinalityKeyUInt16:
		v, err := r.UInt16()
		return uint64(v), err
	case lowCardinalityKeyUInt32:
		v, err := r.UInt32()
		return uint64(v), err
	default:
		return r.UInt64()
	}
}

// ColLowCardinalityNullable implements LowCardinality(Nullable(T)). Per
// spec.md §4.C, nullability here is folded directly into the dictionary
// rather than carried as a separate null mask the way standalone Nullable(T)
// is: dictionary slot 0 is reserved for NULL and a NULL row is encoded as
// key 0. Data never stores the NULL marker itself; slot 0 holds T's zero
// value as a placeholder so the dictionary's row count stays in step with
// the key space.
type ColLowCardinalityNullable[T comparable] struct {
	Data  ColInputOf[T]
	index map[T]uint64
	keys  []uint64
}

// NewLowCardinalityNullable wraps data as LowCardinality(Nullable(data.Type())),
// reserving dictionary slot 0 for NULL.
func NewLowCardinalityNullable[T comparable](data ColInputOf[T]) *ColLowCardinalityNullable[T] {
	c := &ColLowCardinalityNullable[T]{Data: data, index: map[T]uint64{}}
	c.reserveNullSlot()
	return c
}

func (c *ColLowCardinalityNullable[T]) reserveNullSlot() {
	if c.Data.Rows() == 0 {
		var zero T
		c.Data.Append(zero)
	}
}

func (c *ColLowCardinalityNullable[T]) Type() ColumnType {
	return ColumnTypeLowCardinality.Sub(c.Data.Type().Nullable())
}
func (c *ColLowCardinalityNullable[T]) Rows() int { return len(c.keys) }

func (c *ColLowCardinalityNullable[T]) Reset() {
	c.keys = c.keys[:0]
	c.index = map[T]uint64{}
	c.Data.Reset()
	c.reserveNullSlot()
}

// IsNull reports whether row i is NULL.
func (c *ColLowCardinalityNullable[T]) IsNull(i int) bool { return c.keys[i] == 0 }

// Row returns row i's value; if the row is NULL, T's zero value is returned
// (callers should check IsNull first).
func (c *ColLowCardinalityNullable[T]) Row(i int) T { return c.Data.Row(int(c.keys[i])) }

// Append adds v as non-NULL, reusing its dictionary entry if already seen.
func (c *ColLowCardinalityNullable[T]) Append(v T) {
	key, ok := c.index[v]
	if !ok {
		key = uint64(c.Data.Rows())
		c.Data.Append(v)
		c.index[v] = key
	}
	c.keys = append(c.keys, key)
}

// AppendNull appends a NULL row, pointing it at the reserved slot 0.
func (c *ColLowCardinalityNullable[T]) AppendNull() {
	c.keys = append(c.keys, 0)
}

func (c *ColLowCardinalityNullable[T]) keyWidth() int {
	n := uint64(c.Data.Rows())
	switch {
	case n <= 1<<8:
		return lowCardinalityKeyUInt8
	case n <= 1<<16:
		return lowCardinalityKeyUInt16
	case n <= 1<<32:
		return lowCardinalityKeyUInt32
	default:
		return lowCardinalityKeyUInt64
	}
}

func (c *ColLowCardinalityNullable[T]) EncodeStatePrefix(b *Buffer, _ int) {
	b.PutUInt64(lowCardinalityVersion)
}

func (c *ColLowCardinalityNullable[T]) DecodeStatePrefix(r *Reader, _ int) error {
	_, err := r.UInt64()
	return err
}

func (c *ColLowCardinalityNullable[T]) EncodeColumn(b *Buffer) {
	width := c.keyWidth()
	flags := uint64(width) | lowCardinalityHasAdditionalKeysBit | lowCardinalityNeedUpdateDictionary
	b.PutUInt64(flags)
	b.PutUInt64(uint64(c.Data.Rows()))
	c.Data.EncodeColumn(b)
	b.PutUInt64(uint64(len(c.keys)))
	for _, k := range c.keys {
		putLowCardinalityKey(b, width, k)
	}
}

func (c *ColLowCardinalityNullable[T]) WriteColumn(w *Writer) error {
	w.ChainBuffer(c.EncodeColumn)
	return nil
}

func (c *ColLowCardinalityNullable[T]) DecodeColumn(r *Reader, rows int) error {
	flags, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "flags")
	}
	width := int(flags & 0xff)
	dictSize, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "dict size")
	}
	if err := c.Data.DecodeColumn(r, int(dictSize)); err != nil {
		return errors.Wrap(err, "dictionary")
	}
	n, err := r.UInt64()
	if err != nil {
		return errors.Wrap(err, "key count")
	}
	if int(n) != rows {
		return errors.Errorf("key count %d does not match block rows %d", n, rows)
	}
	c.keys = make([]uint64, rows)
	for i := 0; i < rows; i++ {
		k, err := readLowCardinalityKey(r, width)
		if err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
		c.keys[i] = k
	}
	return nil
}
