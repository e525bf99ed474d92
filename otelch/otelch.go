// Package otelch defines the OpenTelemetry span attributes Client.Do
// records around a query, beyond the generic semconv database attributes.
package otelch

import "go.opentelemetry.io/otel/attribute"

const namespace = "ch"

// ProtocolVersion records the negotiated native protocol revision.
func ProtocolVersion(v int) attribute.KeyValue {
	return attribute.Int(namespace+".protocol_version", v)
}

// QuotaKey records the query's quota key, if any.
func QuotaKey(v string) attribute.KeyValue {
	return attribute.String(namespace+".quota_key", v)
}

// QueryID records the query's ID.
func QueryID(v string) attribute.KeyValue {
	return attribute.String(namespace+".query_id", v)
}

// BlocksSent records how many data blocks the client sent (INSERT).
func BlocksSent(v int) attribute.KeyValue {
	return attribute.Int(namespace+".blocks_sent", v)
}

// BlocksReceived records how many data blocks the client received (SELECT).
func BlocksReceived(v int) attribute.KeyValue {
	return attribute.Int(namespace+".blocks_received", v)
}

// RowsReceived records the total row count across all received blocks.
func RowsReceived(v int) attribute.KeyValue {
	return attribute.Int(namespace+".rows_received", v)
}

// ColumnsReceived records the column count of the last received block.
func ColumnsReceived(v int) attribute.KeyValue {
	return attribute.Int(namespace+".columns_received", v)
}

// Rows records the server-reported progress row count.
func Rows(v int) attribute.KeyValue {
	return attribute.Int(namespace+".rows", v)
}

// Bytes records the server-reported progress byte count.
func Bytes(v int) attribute.KeyValue {
	return attribute.Int(namespace+".bytes", v)
}

// ErrorCode records a ClickHouse exception's numeric code.
func ErrorCode(v int) attribute.KeyValue {
	return attribute.Int(namespace+".error_code", v)
}

// ErrorName records a ClickHouse exception's name.
func ErrorName(v string) attribute.KeyValue {
	return attribute.String(namespace+".error_name", v)
}
