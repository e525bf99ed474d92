package ch

import (
	"context"

	"github.com/nativeproto/ch/proto"
)

// Ping checks that the connection is alive by round-tripping a PING/PONG.
func (c *Client) Ping(ctx context.Context) error {
	if c.IsClosed() {
		return ErrClosed
	}
	c.writer.ChainBuffer(func(buf *proto.Buffer) {
		proto.ClientCodePing.Encode(buf)
	})
	if err := c.flush(ctx); err != nil {
		return err
	}
	code, err := c.packet(ctx)
	if err != nil {
		return err
	}
	switch code {
	case proto.ServerCodePong:
		return nil
	case proto.ServerCodeException:
		e, err := c.exception()
		if err != nil {
			return err
		}
		return e
	default:
		return errUnexpectedPacket(code)
	}
}
