package proto

// Stage is the requested query processing stage.
type Stage byte

const (
	StageFetchColumns     Stage = 0
	StageWithMergeableState Stage = 1
	StageComplete         Stage = 2
)

// CompressionState is the per-query compression flag sent after the
// settings block, independent of whether the connection negotiated
// compression mode at all (it can still be toggled off for a single query).
type CompressionState byte

const (
	CompressionDisabled CompressionState = 0
	CompressionEnabled  CompressionState = 1
)

// Parameter is a named query parameter (EXPERIMENTAL server feature, gated
// by FeatureParameters).
type Parameter struct {
	Name  string
	Value string
}

// Query is the wire representation of a QUERY packet.
type Query struct {
	ID          string
	Body        string
	Secret      string
	Stage       Stage
	Compression CompressionState
	Settings    []Setting
	Parameters  []Parameter
	Info        ClientInfo
}

// Encode writes the QUERY packet body, gating the inter-server secret and
// parameters sub-records on protocol features.
func (q Query) Encode(b *Buffer, protocolVersion int) {
	ClientCodeQuery.Encode(b)
	b.PutString(q.ID)

	if FeatureClientInfo.In(protocolVersion) {
		q.Info.EncodeAware(b, protocolVersion)
	}

	EncodeSettings(b, q.Settings)

	if FeatureInterServerSecret.In(protocolVersion) {
		b.PutString(q.Secret)
	}

	b.PutUVarInt(uint64(q.Stage))
	b.PutByte(byte(q.Compression))
	b.PutString(q.Body)

	if FeatureParameters.In(protocolVersion) && len(q.Parameters) > 0 {
		for _, p := range q.Parameters {
			b.PutString(p.Name)
			b.PutString(p.Value)
		}
		b.PutString("")
	}
}
