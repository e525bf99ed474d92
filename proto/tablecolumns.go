package proto

// TableColumns is the payload of a TABLE_COLUMNS packet: a table name and
// the textual column-structure description the server would use to CREATE
// a matching table.
type TableColumns struct {
	TableName string
	Columns   string
}

// Decode reads a TABLE_COLUMNS packet body.
func (t *TableColumns) Decode(r *Reader) error {
	var err error
	if t.TableName, err = r.Str(); err != nil {
		return err
	}
	if t.Columns, err = r.Str(); err != nil {
		return err
	}
	return nil
}
