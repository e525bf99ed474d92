package proto

// Setting is a single server-side setting sent with a query.
type Setting struct {
	Key       string
	Value     string
	Important bool
}

// EncodeSettings writes settings as (name, is_important, string_value)
// triples terminated by an empty-string name, the modern wire form used for
// revisions that support FeatureSettingsSerializedAsStrings.
func EncodeSettings(b *Buffer, settings []Setting) {
	for _, s := range settings {
		b.PutString(s.Key)
		b.PutBool(s.Important)
		b.PutString(s.Value)
	}
	b.PutString("")
}
