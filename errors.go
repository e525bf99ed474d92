package ch

import (
	"github.com/go-faster/errors"

	"github.com/nativeproto/ch/proto"
)

// errUnexpectedPacket reports a server packet code that is invalid in the
// context it was received.
func errUnexpectedPacket(code proto.ServerCode) error {
	return errors.Errorf("unexpected packet %s", code)
}

// ErrClosed is returned by any operation attempted on a closed Client.
var ErrClosed = errors.New("ch: client is closed")

// Exception is the structured server-side error type; aliased so callers
// can errors.As into it without importing proto directly.
type Exception = proto.Exception

// IsException reports whether err is or wraps an *Exception.
func IsException(err error) bool {
	var exc *Exception
	return errors.As(err, &exc)
}
