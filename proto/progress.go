package proto

// Progress is a PROGRESS packet's payload: incremental counters that the
// caller is expected to accumulate.
type Progress struct {
	Rows       uint64
	Bytes      uint64
	TotalRows  uint64
	WroteRows  uint64
	WroteBytes uint64
}

// Decode reads a PROGRESS packet body.
func (p *Progress) Decode(r *Reader, protocolVersion int) error {
	var err error
	if p.Rows, err = r.UVarInt(); err != nil {
		return err
	}
	if p.Bytes, err = r.UVarInt(); err != nil {
		return err
	}
	if p.TotalRows, err = r.UVarInt(); err != nil {
		return err
	}
	if FeatureClientWriteInfo.In(protocolVersion) {
		if p.WroteRows, err = r.UVarInt(); err != nil {
			return err
		}
		if p.WroteBytes, err = r.UVarInt(); err != nil {
			return err
		}
	}
	return nil
}

// Add accumulates delta into p, matching the "progress values are diffs"
// semantics from spec.md §3.
func (p *Progress) Add(delta Progress) {
	p.Rows += delta.Rows
	p.Bytes += delta.Bytes
	p.TotalRows += delta.TotalRows
	p.WroteRows += delta.WroteRows
	p.WroteBytes += delta.WroteBytes
}

// Profile is a PROFILE_INFO packet's payload.
type Profile struct {
	Rows                      uint64
	Blocks                    uint64
	Bytes                     uint64
	AppliedLimit              bool
	RowsBeforeLimit           uint64
	CalculatedRowsBeforeLimit bool
}

// Decode reads a PROFILE_INFO packet body.
func (p *Profile) Decode(r *Reader) error {
	var err error
	if p.Rows, err = r.UVarInt(); err != nil {
		return err
	}
	if p.Blocks, err = r.UVarInt(); err != nil {
		return err
	}
	if p.Bytes, err = r.UVarInt(); err != nil {
		return err
	}
	if p.AppliedLimit, err = r.Bool(); err != nil {
		return err
	}
	if p.RowsBeforeLimit, err = r.UVarInt(); err != nil {
		return err
	}
	if p.CalculatedRowsBeforeLimit, err = r.Bool(); err != nil {
		return err
	}
	return nil
}
