package ch

// Version identifies this client to the server during the handshake and in
// system.query_log's client_name column.
type Version struct {
	Name  string
	Major int
	Minor int
	Patch int
}

// DefaultVersion is reported by Dial when Options.ClientVersion is unset.
var DefaultVersion = Version{
	Name:  "nativeproto-ch",
	Major: 1,
	Minor: 0,
	Patch: 0,
}
