package proto

import "go.opentelemetry.io/otel/trace"

// Interface enumerates how the client connected to the server.
type Interface byte

const (
	InterfaceTCP  Interface = 1
	InterfaceHTTP Interface = 2
)

// ClientQueryKind distinguishes an initial query from one forwarded by
// another server (distributed query execution).
type ClientQueryKind byte

const (
	ClientQueryInitial   ClientQueryKind = 1
	ClientQuerySecondary ClientQueryKind = 2
)

// ClientInfo is sent as part of a QUERY packet, describing the originating
// client for server-side logging, quotas and distributed-query tracing.
type ClientInfo struct {
	ProtocolVersion int
	Major, Minor, Patch int

	Interface Interface
	Query     ClientQueryKind

	InitialUser    string
	InitialQueryID string
	InitialAddress string

	OSUser         string
	ClientHostname string
	ClientName     string

	QuotaKey string

	Span trace.SpanContext
}

// EncodeAware writes the client-info sub-record, gating optional fields on
// protocolVersion.
func (c ClientInfo) EncodeAware(b *Buffer, protocolVersion int) {
	b.PutByte(byte(c.Query))
	b.PutString(c.InitialUser)
	b.PutString(c.InitialQueryID)
	b.PutString(c.InitialAddress)
	if FeatureClientWriteInfo.In(protocolVersion) {
		b.PutInt64(0) // initial_query_start_time_microseconds, unused by this client
	}
	b.PutByte(byte(c.Interface))
	b.PutString(c.OSUser)
	b.PutString(c.ClientHostname)
	b.PutString(c.ClientName)
	b.PutUVarInt(uint64(c.Major))
	b.PutUVarInt(uint64(c.Minor))
	b.PutUVarInt(uint64(c.ProtocolVersion))

	if FeatureQuotaKeyInClientInfo.In(protocolVersion) {
		b.PutString(c.QuotaKey)
	}
	if FeatureParameters.In(protocolVersion) {
		b.PutUVarInt(0) // distributed_depth
	}
	if FeatureVersionPatch.In(protocolVersion) {
		b.PutUVarInt(uint64(c.Patch))
	}
	if FeatureOpenTelemetry.In(protocolVersion) {
		if c.Span.IsValid() {
			b.PutByte(1)
			tid := c.Span.TraceID()
			sid := c.Span.SpanID()
			b.PutRaw(tid[:])
			b.PutRaw(sid[:])
			b.PutString("")       // tracestate
			b.PutByte(byte(c.Span.TraceFlags()))
		} else {
			b.PutByte(0)
		}
	}
}
