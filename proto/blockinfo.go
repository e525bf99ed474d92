package proto

// BlockInfo is the short metadata header preceding a block on newer server
// revisions: a bool "is_overflows" field (field-id 1) and an int32
// "bucket_num" field (field-id 2), terminated by field-id 0.
type BlockInfo struct {
	Overflows bool
	BucketNum int32
}

// Encode writes the field/value pairs terminated by a zero field-id.
func (b BlockInfo) Encode(buf *Buffer) {
	buf.PutUVarInt(1)
	buf.PutBool(b.Overflows)
	buf.PutUVarInt(2)
	buf.PutInt32(b.BucketNum)
	buf.PutUVarInt(0)
}

// Decode reads field/value pairs until it sees field-id 0. Unknown
// field-ids are not expected on this wire version and are treated as a
// protocol error, since there is no generic way to skip an unknown field's
// value.
func (b *BlockInfo) Decode(r *Reader) error {
	b.BucketNum = -1
	for {
		id, err := r.UVarInt()
		if err != nil {
			return err
		}
		switch id {
		case 0:
			return nil
		case 1:
			if b.Overflows, err = r.Bool(); err != nil {
				return err
			}
		case 2:
			if b.BucketNum, err = r.Int32(); err != nil {
				return err
			}
		default:
			return errUnknownBlockInfoField(id)
		}
	}
}

type errUnknownBlockInfoField int

func (e errUnknownBlockInfoField) Error() string {
	return "unknown BlockInfo field-id"
}
