package proto

// Feature gates an optional wire field behind a minimum protocol revision.
type Feature int

// Revision is the native protocol revision number exchanged during the
// handshake; it determines which optional fields are present on the wire.
type Revision = int

// Known protocol revisions that gate optional fields. Values follow the
// reference server's DBMS_TCP_PROTOCOL_VERSION history.
const (
	revisionClientInfo           Revision = 54032
	revisionServerTimezone       Revision = 54058
	revisionQuotaKeyInClientInfo Revision = 54060
	revisionServerDisplayName    Revision = 54372
	revisionVersionPatch         Revision = 54401
	revisionServerLogs           Revision = 54406
	revisionClientWriteInfo      Revision = 54420
	revisionSettingsSerializedAsStrings Revision = 54429
	revisionInterServerSecret    Revision = 54441
	revisionOpenTelemetry        Revision = 54442
	revisionDBMSMinRevisionWithParameters Revision = 54459
	revisionTempTables           Revision = 54423
	revisionAddendum             Revision = 54458
	revisionParameters           Revision = 54459
)

// In reports whether the feature's gating revision is satisfied by rev.
func (f Feature) In(rev Revision) bool { return rev >= int(f) }

// Exported named features, mirroring the teacher's FeatureXXX.In(revision)
// call sites.
const (
	FeatureClientInfo           Feature = Feature(revisionClientInfo)
	FeatureServerTimezone       Feature = Feature(revisionServerTimezone)
	FeatureQuotaKeyInClientInfo Feature = Feature(revisionQuotaKeyInClientInfo)
	FeatureServerDisplayName    Feature = Feature(revisionServerDisplayName)
	FeatureVersionPatch         Feature = Feature(revisionVersionPatch)
	FeatureServerLogs           Feature = Feature(revisionServerLogs)
	FeatureClientWriteInfo      Feature = Feature(revisionClientWriteInfo)
	FeatureSettingsSerializedAsStrings Feature = Feature(revisionSettingsSerializedAsStrings)
	FeatureInterServerSecret    Feature = Feature(revisionInterServerSecret)
	FeatureOpenTelemetry        Feature = Feature(revisionOpenTelemetry)
	FeatureTempTables           Feature = Feature(revisionTempTables)
	FeatureParameters           Feature = Feature(revisionParameters)
)

// ClientTCPProtocolVersion is the revision this client implements and sends
// during the handshake.
const ClientTCPProtocolVersion Revision = 54465
