package compress

import (
	"encoding/binary"
	"io"

	"github.com/go-faster/city"
	"github.com/go-faster/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Reader decodes a stream of compressed frames from an underlying io.Reader,
// presenting the concatenated decompressed payloads as a plain io.Reader.
type Reader struct {
	r io.Reader

	data []byte // decompressed, unread bytes of the current frame
	pos  int

	header  [16 + headerSize]byte
	zstdDec *zstd.Decoder
}

// NewReader wraps r, decoding compressed frames on demand.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read implements io.Reader, pulling and decompressing frames as needed.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		if err := r.readFrame(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func (r *Reader) readFrame() error {
	if _, err := io.ReadFull(r.r, r.header[:]); err != nil {
		return errors.Wrap(err, "read frame header")
	}
	var refHash city.U128
	refHash.Low = binary.LittleEndian.Uint64(r.header[0:8])
	refHash.High = binary.LittleEndian.Uint64(r.header[8:16])

	method := Method(r.header[16])
	sizeWithHeader := binary.LittleEndian.Uint32(r.header[17:21])
	uncompressedSize := binary.LittleEndian.Uint32(r.header[21:25])

	if sizeWithHeader < headerSize {
		return errors.Errorf("invalid compressed frame size %d", sizeWithHeader)
	}
	payloadSize := int(sizeWithHeader) - headerSize
	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return errors.Wrap(err, "read frame payload")
	}

	body := make([]byte, headerSize+payloadSize)
	copy(body, r.header[16:])
	copy(body[headerSize:], payload)

	actual := city.CH128(body)
	if actual.Low != refHash.Low || actual.High != refHash.High {
		return errors.Wrap(&CorruptedDataErr{
			Actual:    actual,
			Reference: refHash,
			RawSize:   int(sizeWithHeader),
			DataSize:  payloadSize,
		}, "checksum mismatch")
	}

	out := make([]byte, uncompressedSize)
	switch method {
	case None:
		copy(out, payload)
	case LZ4:
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return errors.Wrap(err, "lz4 decompress")
		}
		if n != int(uncompressedSize) {
			return errors.Errorf("lz4: expected %d bytes, got %d", uncompressedSize, n)
		}
	case ZSTD:
		if r.zstdDec == nil {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return errors.Wrap(err, "zstd decoder")
			}
			r.zstdDec = dec
		}
		decoded, err := r.zstdDec.DecodeAll(payload, out[:0])
		if err != nil {
			return errors.Wrap(err, "zstd decompress")
		}
		if len(decoded) != int(uncompressedSize) {
			return errors.Errorf("zstd: expected %d bytes, got %d", uncompressedSize, len(decoded))
		}
		out = decoded
	default:
		return errors.Errorf("unknown compression method %#x", byte(method))
	}

	r.data = out
	r.pos = 0
	return nil
}
