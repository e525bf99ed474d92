// Package chpool provides a bounded pool of ch.Client connections, built on
// jackc/puddle's generic resource pool rather than a hand-rolled
// semaphore+mutex free list.
package chpool

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/puddle/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nativeproto/ch"
)

// Config configures a Pool.
type Config struct {
	// ClientOptions is passed to ch.Dial for every new connection.
	ClientOptions ch.Options
	// MaxConns bounds the number of live connections. Defaults to 4.
	MaxConns int32
	// MinConns is the number of connections Startup eagerly creates.
	// Acquire and Release do not replenish the idle set back up to
	// MinConns. Defaults to 0 (connections are created lazily, on first
	// Acquire).
	MinConns int32
}

func (c *Config) setDefaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = 4
	}
	if c.MinConns > c.MaxConns {
		c.MinConns = c.MaxConns
	}
}

// Pool is a puddle.Pool[*ch.Client] with ch-shaped Acquire/Release. It
// mirrors spec.md §4.G's bounded free/acquired lifecycle: puddle's idle set
// is "free", its held-resource set is "acquired", and MaxConns bounds
// |free|+|acquired| exactly as puddle's own MaxSize does.
type Pool struct {
	p   *puddle.Pool[*ch.Client]
	cfg Config
}

// New creates a Pool. Unless Config.MinConns is set and Startup is called,
// connections are dialed lazily, on first Acquire.
func New(cfg Config) (*Pool, error) {
	cfg.setDefaults()
	constructor := func(ctx context.Context) (*ch.Client, error) {
		c, err := ch.Dial(ctx, cfg.ClientOptions)
		if err != nil {
			return nil, errors.Wrap(err, "dial")
		}
		return c, nil
	}
	destructor := func(c *ch.Client) {
		_ = c.Close()
	}
	p, err := puddle.NewPool(&puddle.Config[*ch.Client]{
		Constructor: constructor,
		Destructor:  destructor,
		MaxSize:     cfg.MaxConns,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new puddle pool")
	}
	return &Pool{p: p, cfg: cfg}, nil
}

// Connect is a convenience constructor parsing a DSN into ch.Options.
func Connect(ctx context.Context, dsn string) (*Pool, error) {
	parsed, err := ch.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}
	return New(Config{ClientOptions: parsed.Options})
}

// Startup eagerly creates MinConns connections concurrently (mirroring the
// teacher's errgroup-fanned-out Do) and releases them to the idle set. If
// any dial fails, the ones that succeeded are closed and the error is
// returned (spec.md §4.G's strict-mode startup).
func (p *Pool) Startup(ctx context.Context) error {
	n := int(p.cfg.MinConns)
	if n == 0 {
		return nil
	}
	resources := make([]*puddle.Resource[*ch.Client], n)
	g, gctx := errgroup.WithContext(ctx)
	for i := range resources {
		i := i
		g.Go(func() error {
			res, err := p.p.Acquire(gctx)
			if err != nil {
				return errors.Wrap(err, "dial")
			}
			resources[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, res := range resources {
			if res != nil {
				res.Destroy()
			}
		}
		return errors.Wrap(err, "startup")
	}
	for _, res := range resources {
		res.Release()
	}
	return nil
}

// refresh is the pool's liveness check (spec.md §4.F/§4.G "refresh"):
// ping the connection, and if that fails, attempt exactly one Reconnect.
// Returns an error only if both the ping and the reconnect attempt failed,
// meaning the connection must be evicted rather than lent or kept idle.
func refresh(ctx context.Context, c *ch.Client) error {
	if c.IsClosed() {
		return c.Reconnect(ctx)
	}
	if err := c.Ping(ctx); err == nil {
		return nil
	}
	return c.Reconnect(ctx)
}

// Acquire returns a connection from the pool, dialing a new one if the
// pool has capacity and no idle connection is available. Every connection
// is refreshed before being lent, per spec.md §4.G's acquire protocol: a
// dead idle connection is discarded and the next one (or a freshly dialed
// one) is tried instead, up to MaxConns+1 attempts.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	for attempt := int32(0); attempt < p.cfg.MaxConns+1; attempt++ {
		res, err := p.p.Acquire(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "acquire")
		}
		if err := refresh(ctx, res.Value()); err != nil {
			res.Destroy()
			continue
		}
		return &Conn{res: res}, nil
	}
	return nil, errors.New("acquire: no live connection after exhausting pool capacity")
}

// Stat reports current pool occupancy.
func (p *Pool) Stat() *puddle.Stat { return p.p.Stat() }

// Shutdown closes every connection, idle or acquired, and marks the pool
// closed (spec.md §4.G). It is the caller's responsibility to ensure no
// connection is still borrowed; Shutdown does not force-interrupt them.
func (p *Pool) Shutdown() { p.p.Close() }

// Close is an alias for Shutdown, matching the common Go pool-client idiom.
func (p *Pool) Close() { p.Shutdown() }
