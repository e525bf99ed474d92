package chpool

import (
	"context"
	"time"

	"github.com/jackc/puddle/v2"

	"github.com/nativeproto/ch"
)

// Conn is a pooled ch.Client checked out from a Pool. It must be returned
// via Release (or permanently removed via Close) exactly once.
type Conn struct {
	res *puddle.Resource[*ch.Client]
}

// client returns the underlying connection.
func (c *Conn) client() *ch.Client { return c.res.Value() }

// Do runs q on the underlying connection.
func (c *Conn) Do(ctx context.Context, q ch.Query) error {
	return c.client().Do(ctx, q)
}

// Ping round-trips a PING/PONG on the underlying connection.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client().Ping(ctx)
}

// Release returns the connection to the pool, or destroys it if it could
// not be refreshed back to a live state. This is the trailing half of
// spec.md §4.G's acquire protocol: a connection is refreshed (ping, then
// reconnect-once-on-failure) both before being lent and after being
// returned, so a connection that died mid-borrow isn't handed to the next
// caller.
func (c *Conn) Release() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := refresh(ctx, c.client()); err != nil {
		c.res.Destroy()
		return
	}
	c.res.Release()
}

// Close closes the underlying connection and removes it from the pool,
// rather than returning it for reuse.
func (c *Conn) Close() error {
	err := c.client().Close()
	c.res.Destroy()
	return err
}
