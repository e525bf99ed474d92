package proto

import (
	"time"

	"github.com/go-faster/errors"
)

// ProfileEventType distinguishes a monotonically increasing counter from an
// instantaneous gauge, matching system.events' "type" column.
type ProfileEventType byte

const (
	ProfileEventIncrement ProfileEventType = 1
	ProfileEventGauge     ProfileEventType = 2
)

func (t ProfileEventType) String() string {
	switch t {
	case ProfileEventIncrement:
		return "increment"
	case ProfileEventGauge:
		return "gauge"
	default:
		return "unknown"
	}
}

// ProfileEvent is a single row of the ProfilesEvents packet's block.
type ProfileEvent struct {
	Host        string
	CurrentTime time.Time
	ThreadID    uint64
	Type        ProfileEventType
	Name        string
	Value       int64
}

// ProfileEvents decodes the ProfilesEvents packet's block, whose columns are
// host_name, current_time, thread_id, type, name, value.
type ProfileEvents struct {
	Host        *ColStr
	CurrentTime *ColDateTime
	ThreadID    *ColNum[uint64]
	Type        *ColNum[int8]
	Name        *ColStr
	Value       *ColNum[int64]
}

// NewProfileEvents constructs a ProfileEvents ready to decode.
func NewProfileEvents() *ProfileEvents {
	return &ProfileEvents{
		Host:        new(ColStr),
		CurrentTime: new(ColDateTime),
		ThreadID:    ColUInt64(),
		Type:        ColInt8(),
		Name:        new(ColStr),
		Value:       ColInt64(),
	}
}

// Result resolves ProfileEvents' columns by name for Block.DecodeBlock.
func (p *ProfileEvents) Result() Result {
	return namedColumns{
		"host_name":    p.Host,
		"current_time": p.CurrentTime,
		"thread_id":    p.ThreadID,
		"type":         p.Type,
		"name":         p.Name,
		"value":        p.Value,
	}
}

// All materializes every decoded row as a ProfileEvent.
func (p *ProfileEvents) All() ([]ProfileEvent, error) {
	n := p.Name.Rows()
	out := make([]ProfileEvent, n)
	for i := 0; i < n; i++ {
		out[i] = ProfileEvent{
			Host:        p.Host.Row(i),
			CurrentTime: p.CurrentTime.Row(i),
			ThreadID:    p.ThreadID.Row(i),
			Type:        ProfileEventType(p.Type.Row(i)),
			Name:        p.Name.Row(i),
			Value:       p.Value.Row(i),
		}
	}
	return out, nil
}

// namedColumns resolves Result.Column by looking the descriptor's name up in
// a fixed map of pre-declared destination columns, falling back to the type
// registry for any column the server adds that isn't pinned here.
type namedColumns map[string]Column

func (n namedColumns) Column(_ int, desc ColDesc) (Column, error) {
	if c, ok := n[desc.Name]; ok {
		return c, nil
	}
	c, err := NewColumn(desc.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "unrecognized column %q", desc.Name)
	}
	return c, nil
}
