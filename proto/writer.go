package proto

import (
	"io"

	"github.com/go-faster/errors"

	"github.com/nativeproto/ch/compress"
)

// flushThreshold is the default buffer size (1 MiB) at which ShouldFlush
// reports true.
const flushThreshold = 1 << 20

// Writer implements the buffered-write half of the framing I/O primitives,
// accumulating into a Buffer and writing it to the underlying transport
// only on explicit Flush; it does not flush on its own when the buffer
// reaches flushThreshold, and ShouldFlush reports when it has.
//
// Deadlines are the caller's responsibility (set on the underlying
// io.Writer, typically a net.Conn, before calling Flush); Writer itself does
// not take a context.
type Writer struct {
	w   io.Writer
	buf *Buffer

	compress   bool
	compressor *compress.Compressor

	flushThreshold int
}

// NewWriter creates a Writer flushing to w, using buf as scratch space.
func NewWriter(w io.Writer, buf *Buffer) *Writer {
	if buf == nil {
		buf = new(Buffer)
	}
	return &Writer{w: w, buf: buf, flushThreshold: flushThreshold}
}

// SetFlushThreshold overrides the default threshold used by ShouldFlush,
// e.g. from a DSN's compress_block_size parameter.
func (w *Writer) SetFlushThreshold(n int) {
	if n > 0 {
		w.flushThreshold = n
	}
}

// EnableCompression turns on block compression for subsequently chained
// buffers, using method for the compressed frame envelope.
func (w *Writer) EnableCompression(method compress.Method) {
	w.compress = true
	w.compressor = compress.NewCompressor(method)
}

// DisableCompression turns compression back off.
func (w *Writer) DisableCompression() {
	w.compress = false
	w.compressor = nil
}

// ChainBuffer lets fn append to the writer's scratch Buffer. Used so that a
// single logical write (e.g. one Block) can be framed by one compression
// envelope regardless of how many calls built it up, and so the buffer can
// grow past flushThreshold before the caller decides to Flush.
func (w *Writer) ChainBuffer(fn func(buf *Buffer)) {
	fn(w.buf)
}

// Buffered reports how many bytes are queued, un-flushed.
func (w *Writer) Buffered() int { return len(w.buf.Buf) }

// ShouldFlush reports whether the buffered bytes have reached flushThreshold.
func (w *Writer) ShouldFlush() bool { return w.Buffered() >= w.flushThreshold }

// Flush writes the current buffer to the transport, compressing it first if
// compression is enabled, and resets the buffer.
func (w *Writer) Flush() (int, error) {
	if len(w.buf.Buf) == 0 {
		return 0, nil
	}
	data := w.buf.Buf
	if w.compress {
		if err := w.compressor.Compress(data); err != nil {
			return 0, errors.Wrap(err, "compress")
		}
		data = w.compressor.Data
	}
	n, err := w.w.Write(data)
	w.buf.Reset()
	if err != nil {
		return n, errors.Wrap(err, "write")
	}
	return n, nil
}
