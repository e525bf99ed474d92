package proto

// ClientHello is the HELLO packet the client sends to open a connection.
type ClientHello struct {
	Name             string
	VersionMajor     int
	VersionMinor     int
	ProtocolVersion  int
	Database         string
	User             string
	Password         string
}

// Encode writes the HELLO packet body (the tag itself is written by the
// caller via ClientCodeHello.Encode).
func (h ClientHello) Encode(b *Buffer) {
	b.PutString(h.Name)
	b.PutUVarInt(uint64(h.VersionMajor))
	b.PutUVarInt(uint64(h.VersionMinor))
	b.PutUVarInt(uint64(h.ProtocolVersion))
	b.PutString(h.Database)
	b.PutString(h.User)
	b.PutString(h.Password)
}

// ServerHello is the server's handshake response.
type ServerHello struct {
	Name            string
	VersionMajor    int
	VersionMinor    int
	Revision        int
	Timezone        string
	DisplayName     string
	VersionPatch    int
}

// Decode reads the HELLO reply, gating optional fields on the revision it
// has read so far.
func (s *ServerHello) Decode(r *Reader) error {
	var err error
	if s.Name, err = r.Str(); err != nil {
		return err
	}
	if s.VersionMajor, err = r.Int(); err != nil {
		return err
	}
	if s.VersionMinor, err = r.Int(); err != nil {
		return err
	}
	if s.Revision, err = r.Int(); err != nil {
		return err
	}
	if FeatureServerTimezone.In(s.Revision) {
		if s.Timezone, err = r.Str(); err != nil {
			return err
		}
	}
	if FeatureServerDisplayName.In(s.Revision) {
		if s.DisplayName, err = r.Str(); err != nil {
			return err
		}
	}
	if FeatureVersionPatch.In(s.Revision) {
		if s.VersionPatch, err = r.Int(); err != nil {
			return err
		}
	} else {
		s.VersionPatch = s.VersionMinor
	}
	return nil
}
