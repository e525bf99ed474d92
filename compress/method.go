// Package compress implements the compressed-block envelope used by the
// native protocol: a CityHash128 checksum followed by a method byte, the
// compressed and uncompressed sizes, and the payload.
package compress

// Method is the compression method byte embedded in a compressed frame.
type Method byte

// Known compression methods. LZ4HC is not a distinct wire method: it is the
// same LZ4 frame, produced by a higher-effort encoder. See Compressor.Level.
const (
	None Method = 0x02
	LZ4  Method = 0x82
	ZSTD Method = 0x90
)

func (m Method) String() string {
	switch m {
	case None:
		return "None"
	case LZ4:
		return "LZ4"
	case ZSTD:
		return "ZSTD"
	default:
		return "Unknown"
	}
}
