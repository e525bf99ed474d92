package ch

// Setting is a client-level setting applied to every query, unless
// overridden by a query-scoped Query.Settings entry of the same Key.
type Setting struct {
	Key       string
	Value     string
	Important bool
}
