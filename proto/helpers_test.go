package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// colAware returns a decode function bound to dst and rows, for use with
// requireNoShortRead's truncated-buffer sweep.
func colAware(dst Column, rows int) func(r *Reader) error {
	return func(r *Reader) error {
		return dst.DecodeColumn(r, rows)
	}
}

// requireNoShortRead feeds decode every proper prefix of buf and requires
// that it fails (rather than silently succeeding on truncated input), then
// decodes the full buffer and requires success — guarding against decoders
// that stop reading before consuming every byte their length prefix implies.
func requireNoShortRead(t *testing.T, buf []byte, decode func(r *Reader) error) {
	t.Helper()
	for n := 0; n < len(buf); n++ {
		r := NewReader(bytes.NewReader(buf[:n]))
		require.Errorf(t, decode(r), "short read at %d/%d bytes should fail", n, len(buf))
	}
	r := NewReader(bytes.NewReader(buf))
	require.NoError(t, decode(r))
}
