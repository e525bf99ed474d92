package compress

import (
	"encoding/binary"

	"github.com/go-faster/city"
	"github.com/go-faster/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// headerSize is method byte (1) + compressed-size-with-header (4) +
// uncompressed-size (4).
const headerSize = 1 + 4 + 4

// Compressor compresses data into Data, framed per the on-wire envelope:
// 16-byte CityHash128, method byte, compressed-size-with-header,
// uncompressed-size, payload.
type Compressor struct {
	Method Method
	// Level selects the LZ4 high-compression (LZ4HC) encoder when Method is
	// LZ4 and Level > 0; ignored otherwise. LZ4HC is not a separate wire
	// method, just a slower, higher-ratio encoder for the same LZ4 frame.
	Level int

	Data []byte

	lz4Writer  lz4.Compressor
	zstdOnce   *zstd.Encoder
	compressed []byte
}

// NewCompressor returns a Compressor using plain LZ4 (if method is LZ4).
// Use NewCompressorHC for the high-compression variant.
func NewCompressor(method Method) *Compressor {
	return &Compressor{Method: method}
}

// NewCompressorHC returns an LZ4 Compressor using the high-compression
// encoder at the given level.
func NewCompressorHC(level int) *Compressor {
	return &Compressor{Method: LZ4, Level: level}
}

// Compress compresses data, writing the framed result to c.Data.
func (c *Compressor) Compress(data []byte) error {
	switch c.Method {
	case None:
		return c.frame(None, data, data)
	case LZ4:
		bound := lz4.CompressBlockBound(len(data))
		if cap(c.compressed) < bound {
			c.compressed = make([]byte, bound)
		}
		c.compressed = c.compressed[:bound]
		var n int
		var err error
		if c.Level > 0 {
			var hc lz4.CompressorHC
			hc.Level = lz4.CompressionLevel(1 << uint(16+c.Level))
			n, err = hc.CompressBlock(data, c.compressed)
		} else {
			n, err = c.lz4Writer.CompressBlock(data, c.compressed)
		}
		if err != nil {
			return errors.Wrap(err, "lz4 compress")
		}
		if n == 0 {
			// lz4 signals incompressible input by returning n=0: the block
			// would not shrink, so store it verbatim under the None method
			// for this frame instead of failing the write.
			return c.frame(None, data, data)
		}
		return c.frame(LZ4, data, c.compressed[:n])
	case ZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return errors.Wrap(err, "zstd encoder")
		}
		defer enc.Close()
		c.compressed = enc.EncodeAll(data, c.compressed[:0])
		return c.frame(ZSTD, data, c.compressed)
	default:
		return errors.Errorf("unknown compression method %s", c.Method)
	}
}

// frame assembles the method+sizes+payload region, computes CityHash128 over
// it, and prepends the 16-byte hash.
func (c *Compressor) frame(method Method, raw, payload []byte) error {
	body := make([]byte, headerSize+len(payload))
	body[0] = byte(method)
	binary.LittleEndian.PutUint32(body[1:5], uint32(headerSize+len(payload)))
	binary.LittleEndian.PutUint32(body[5:9], uint32(len(raw)))
	copy(body[headerSize:], payload)

	h := city.CH128(body)
	if cap(c.Data) < 16+len(body) {
		c.Data = make([]byte, 0, 16+len(body))
	}
	c.Data = c.Data[:0]
	var hashBuf [16]byte
	binary.LittleEndian.PutUint64(hashBuf[0:8], h.Low)
	binary.LittleEndian.PutUint64(hashBuf[8:16], h.High)
	c.Data = append(c.Data, hashBuf[:]...)
	c.Data = append(c.Data, body...)
	return nil
}
