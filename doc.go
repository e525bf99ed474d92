// Package ch is a client for the ClickHouse native TCP protocol: connection
// handshake, compressed columnar block codec, and streaming query
// execution, without a SQL driver or cursor layer on top. See the proto
// subpackage for the wire codec and chpool for connection pooling.
package ch
