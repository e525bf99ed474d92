package proto

import "github.com/go-faster/errors"

// Block is a named, typed, column-oriented bundle of data exchanged in a
// single DATA (or TOTALS/EXTREMES) packet.
type Block struct {
	Info    BlockInfo
	Columns int
	Rows    int

	// Names, Types and Data are populated by DecodeBlock, one entry per
	// column, in wire order.
	Names []string
	Types []ColumnType
	Data  []Column
}

// End reports whether this is the empty terminator/sample block (zero
// columns and rows).
func (b Block) End() bool { return b.Columns == 0 && b.Rows == 0 }

// EncodeBlock writes BlockInfo, dimensions, and each column's name, type,
// optional state prefix and data into buf.
func (b Block) EncodeBlock(buf *Buffer, protocolVersion int, input []InputColumn) error {
	b.Info.Encode(buf)

	rows := 0
	if len(input) > 0 {
		rows = input[0].Data.Rows()
	}
	buf.PutUVarInt(uint64(len(input)))
	buf.PutUVarInt(uint64(rows))

	for _, col := range input {
		if col.Data.Rows() != rows {
			return errors.Errorf("column %q has %d rows, want %d", col.Name, col.Data.Rows(), rows)
		}
		buf.PutString(col.Name)
		buf.PutString(string(col.Data.Type()))
		if rows == 0 {
			continue
		}
		if p, ok := col.Data.(Preparable); ok {
			p.EncodeStatePrefix(buf, protocolVersion)
		}
		col.Data.EncodeColumn(buf)
	}
	return nil
}

// WriteBlock chains EncodeBlock's output into w's scratch buffer.
func (b Block) WriteBlock(w *Writer, protocolVersion int, input []InputColumn) error {
	var rerr error
	w.ChainBuffer(func(buf *Buffer) {
		rerr = b.EncodeBlock(buf, protocolVersion, input)
	})
	return rerr
}

// DecodeBlock reads a block's BlockInfo, dimensions, and per-column
// name/type/state-prefix/data, resolving each column's concrete decoder via
// result. If result is nil, AutoResult is used.
func (b *Block) DecodeBlock(r *Reader, protocolVersion int, result Result) error {
	if result == nil {
		result = AutoResult{}
	}
	if err := b.Info.Decode(r); err != nil {
		return errors.Wrap(err, "block info")
	}
	nCols, err := r.Int()
	if err != nil {
		return errors.Wrap(err, "columns")
	}
	nRows, err := r.Int()
	if err != nil {
		return errors.Wrap(err, "rows")
	}
	b.Columns = nCols
	b.Rows = nRows
	b.Names = make([]string, nCols)
	b.Types = make([]ColumnType, nCols)
	b.Data = make([]Column, nCols)

	for i := 0; i < nCols; i++ {
		name, err := r.Str()
		if err != nil {
			return errors.Wrapf(err, "column %d name", i)
		}
		typeSpec, err := r.Str()
		if err != nil {
			return errors.Wrapf(err, "column %d type", i)
		}
		b.Names[i] = name
		b.Types[i] = ColumnType(typeSpec)

		col, err := result.Column(i, ColDesc{Name: name, Type: ColumnType(typeSpec)})
		if err != nil {
			return errors.Wrapf(err, "column %q", name)
		}
		if nRows > 0 {
			if p, ok := col.(Preparable); ok {
				if err := p.DecodeStatePrefix(r, protocolVersion); err != nil {
					return errors.Wrapf(err, "column %q state prefix", name)
				}
			}
			if err := col.DecodeColumn(r, nRows); err != nil {
				return errors.Wrapf(err, "column %q data", name)
			}
		}
		b.Data[i] = col
	}
	return nil
}
