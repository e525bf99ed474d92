// Package ch implements an async client for the ClickHouse native TCP
// protocol: connection handshake, compressed block codec, and query
// execution with streaming input/output.
package ch

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nativeproto/ch/compress"
	"github.com/nativeproto/ch/proto"
)

// connInfo records the identity the server associated with this connection,
// surfaced on spans.
type connInfo struct {
	User     string
	Database string
}

// ServerInfo is what the server reported about itself during the
// handshake.
type ServerInfo struct {
	Name        string
	Major       int
	Minor       int
	Patch       int
	Revision    int
	Timezone    string
	DisplayName string
}

// Client is a single connection to a ClickHouse server speaking the native
// protocol. A Client is not safe for concurrent use: callers wanting
// concurrency should run multiple Clients, typically via chpool.Pool.
type Client struct {
	conn net.Conn

	// opt is retained so Reconnect can re-dial with the same parameters,
	// targeting whatever database trackCurrentDatabase last observed.
	opt Options

	reader *proto.Reader
	writer *proto.Writer

	compression proto.CompressionState
	compressor  *compress.Compressor

	protocolVersion    int
	version            Version
	server             string
	serverInfo         ServerInfo
	info               connInfo
	settings           []Setting
	sendReceiveTimeout time.Duration

	lg   *zap.Logger
	otel bool

	tracer trace.Tracer

	closed atomic.Bool
	mu     sync.Mutex // not locked by Do or Ping; see the Client doc on concurrent use
}

// Options configures Dial.
type Options struct {
	Address  string
	Database string
	User     string
	Password string

	TLS *tls.Config
	// TLSCACertPath, if set, is read by Dial and added to TLS.RootCAs
	// (creating TLS via defaultTLSConfig if it is nil). Kept separate from
	// TLS so that ParseDSN can record a DSN's ca_certs parameter without
	// performing file I/O itself.
	TLSCACertPath string

	Compression proto.CompressionState
	// CompressionMethod selects the block compression algorithm used when
	// Compression is CompressionEnabled. Defaults to compress.LZ4.
	CompressionMethod compress.Method
	// CompressionLevel, when greater than zero and CompressionMethod is
	// compress.LZ4, selects the LZ4HC (high-compression) encoder at this
	// level instead of plain LZ4. Ignored for other methods. Populated from
	// a DSN's compression=lz4hc query parameter.
	CompressionLevel int

	Settings []Setting

	ClientVersion Version

	Logger *zap.Logger

	// OpenTelemetry enables span creation around Client.Do.
	OpenTelemetry bool
	Tracer        trace.Tracer

	// DialTimeout bounds the initial TCP/TLS dial and handshake. Populated
	// from a DSN's connect_timeout query parameter, if present.
	DialTimeout time.Duration
	// SendReceiveTimeout, if nonzero and ctx carries no deadline, is the
	// read deadline for each wait on the next server packet tag: Do keeps
	// polling after it expires until ctx is done, while Ping returns the
	// timeout error. A deadline on ctx takes precedence. Populated from a
	// DSN's send_receive_timeout query parameter.
	SendReceiveTimeout time.Duration
	// CompressBlockSize overrides the writer's flush threshold, as reported
	// by proto.Writer.ShouldFlush.
	// Populated from a DSN's compress_block_size query parameter.
	CompressBlockSize int
}

func (o *Options) setDefaults() {
	if o.User == "" {
		o.User = "default"
	}
	if o.Database == "" {
		o.Database = "default"
	}
	if o.ClientVersion == (Version{}) {
		o.ClientVersion = DefaultVersion
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.CompressionMethod == 0 {
		o.CompressionMethod = compress.LZ4
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = 10 * time.Second
	}
	if o.OpenTelemetry && o.Tracer == nil {
		o.Tracer = trace.NewNoopTracerProvider().Tracer("github.com/nativeproto/ch")
	}
}

// newCompressor builds the Compressor Dial installs on a Client, selecting
// the LZ4HC encoder when opt requests it (compress.LZ4 with a positive
// CompressionLevel) rather than treating LZ4HC as a distinct wire method.
func newCompressor(opt Options) *compress.Compressor {
	if opt.CompressionMethod == compress.LZ4 && opt.CompressionLevel > 0 {
		return compress.NewCompressorHC(opt.CompressionLevel)
	}
	return compress.NewCompressor(opt.CompressionMethod)
}

// Dial opens a connection, performs the native-protocol handshake, and
// returns a ready-to-use Client.
func Dial(ctx context.Context, opt Options) (*Client, error) {
	opt.setDefaults()

	if opt.TLSCACertPath != "" {
		if opt.TLS == nil {
			opt.TLS = defaultTLSConfig()
		}
		pool, err := loadCACertPool(opt.TLSCACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "load ca_certs")
		}
		opt.TLS.RootCAs = pool
	}

	dialer := net.Dialer{Timeout: opt.DialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if opt.TLS != nil {
		tlsDialer := tls.Dialer{NetDialer: &dialer, Config: opt.TLS}
		conn, err = tlsDialer.DialContext(ctx, "tcp", opt.Address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", opt.Address)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}

	c := &Client{
		conn:               conn,
		opt:                opt,
		reader:             proto.NewReader(conn),
		writer:             proto.NewWriter(conn, new(proto.Buffer)),
		compression:        opt.Compression,
		compressor:         newCompressor(opt),
		protocolVersion:    proto.ClientTCPProtocolVersion,
		version:            opt.ClientVersion,
		info:               connInfo{User: opt.User, Database: opt.Database},
		settings:           opt.Settings,
		lg:                 opt.Logger,
		otel:               opt.OpenTelemetry,
		tracer:             opt.Tracer,
		sendReceiveTimeout: opt.SendReceiveTimeout,
	}
	c.writer.SetFlushThreshold(opt.CompressBlockSize)

	if err := c.handshake(ctx, opt); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "handshake")
	}

	return c, nil
}

func (c *Client) handshake(ctx context.Context, opt Options) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetDeadline(dl)
	}
	defer func() { _ = c.conn.SetDeadline(time.Time{}) }()

	hello := proto.ClientHello{
		Name:            c.version.Name,
		VersionMajor:    c.version.Major,
		VersionMinor:    c.version.Minor,
		ProtocolVersion: c.protocolVersion,
		Database:        opt.Database,
		User:            opt.User,
		Password:        opt.Password,
	}
	c.writer.ChainBuffer(func(buf *proto.Buffer) {
		proto.ClientCodeHello.Encode(buf)
		hello.Encode(buf)
	})
	if _, err := c.writer.Flush(); err != nil {
		return errors.Wrap(err, "send hello")
	}

	code, err := c.readServerCode()
	if err != nil {
		return errors.Wrap(err, "read hello response")
	}
	if code == proto.ServerCodeException {
		e, err := c.exception()
		if err != nil {
			return errors.Wrap(err, "decode exception")
		}
		return e
	}
	if code != proto.ServerCodeHello {
		return errors.Errorf("unexpected packet %s during handshake", code)
	}

	var server proto.ServerHello
	if err := server.Decode(c.reader); err != nil {
		return errors.Wrap(err, "decode hello")
	}
	c.serverInfo = ServerInfo{
		Name:        server.Name,
		Major:       server.VersionMajor,
		Minor:       server.VersionMinor,
		Patch:       server.VersionPatch,
		Revision:    server.Revision,
		Timezone:    server.Timezone,
		DisplayName: server.DisplayName,
	}
	c.server = server.Name
	if server.Revision < c.protocolVersion {
		c.protocolVersion = server.Revision
	}
	return nil
}

// readServerCode reads one varint packet tag as a ServerCode.
func (c *Client) readServerCode() (proto.ServerCode, error) {
	v, err := c.reader.UVarInt()
	if err != nil {
		return 0, err
	}
	return proto.ServerCode(v), nil
}

// packet reads the next server packet tag, honoring ctx cancellation by
// polling a short read deadline.
func (c *Client) packet(ctx context.Context) (proto.ServerCode, error) {
	const pollInterval = 200 * time.Millisecond
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(dl)
	} else if c.sendReceiveTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.sendReceiveTimeout))
	} else {
		_ = c.conn.SetReadDeadline(time.Now().Add(pollInterval))
	}
	code, err := c.readServerCode()
	if err != nil {
		return 0, err
	}
	_ = c.conn.SetReadDeadline(time.Time{})
	return code, nil
}

// encodable is implemented by proto types with a protocol-version-aware
// encoder, e.g. proto.Query.
type encodable interface {
	Encode(b *proto.Buffer, protocolVersion int)
}

// encode chains v's wire representation into the writer's scratch buffer.
func (c *Client) encode(v encodable) {
	c.writer.ChainBuffer(func(buf *proto.Buffer) {
		v.Encode(buf, c.protocolVersion)
	})
}

// decodable is implemented by proto types whose Decode does not depend on
// the protocol version.
type decodable interface {
	Decode(r *proto.Reader) error
}

// decode reads v directly from the connection's reader.
func (c *Client) decode(v decodable) error {
	return v.Decode(c.reader)
}

// flush writes any buffered output to the connection, honoring ctx's
// deadline.
func (c *Client) flush(ctx context.Context) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(dl)
		defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	}
	_, err := c.writer.Flush()
	return err
}

// flushBuf writes b directly to the connection, bypassing the shared
// writer scratch buffer, so it is safe to call concurrently with an
// in-flight Do (used by cancelQuery).
func (c *Client) flushBuf(ctx context.Context, b *proto.Buffer) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(dl)
		defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	}
	_, err := c.conn.Write(b.Buf)
	return err
}

func (c *Client) progress() (proto.Progress, error) {
	var p proto.Progress
	err := p.Decode(c.reader, c.protocolVersion)
	return p, err
}

func (c *Client) profile() (proto.Profile, error) {
	var p proto.Profile
	err := p.Decode(c.reader)
	return p, err
}

func (c *Client) exception() (*proto.Exception, error) {
	var e proto.Exception
	if err := e.Decode(c.reader, true); err != nil {
		return nil, err
	}
	return &e, nil
}

// Database returns the database this connection currently targets: the one
// it was dialed with, or the last one observed via trackCurrentDatabase.
func (c *Client) Database() string { return c.info.Database }

// trackCurrentDatabase records q's target database when q is a "USE <db>"
// statement, so a later reconnect (e.g. a pool refresh) targets the same
// database the caller switched to mid-session.
func (c *Client) trackCurrentDatabase(body string) {
	q := strings.Trim(body, "; \t\n\r")
	if len(q) < 4 || !strings.EqualFold(q[:4], "use ") {
		return
	}
	c.info.Database = strings.TrimSpace(q[4:])
}

// IsClosed reports whether the connection has been closed.
func (c *Client) IsClosed() bool { return c.closed.Load() }

// Close closes the underlying connection. Safe to call more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.conn.Close()
}

// Reconnect re-dials and re-handshakes over a fresh transport, targeting
// whatever database trackCurrentDatabase last recorded (a "USE <db>" issued
// on the previous transport). It is the pool's "refresh" procedure's
// fallback after a failed Ping (spec.md §4.F, §4.G): the connection state
// machine is CREATED -> OPENED <-> CLOSED, reopenable until an explicit
// Close the caller does not intend to undo.
//
// Reconnect only replaces c's transport and handshake state in place; it
// does not return a new Client, so any *Client a pool hands out stays valid
// across a refresh.
func (c *Client) Reconnect(ctx context.Context) error {
	opt := c.opt
	opt.Database = c.info.Database
	opt.setDefaults()

	dialer := net.Dialer{Timeout: opt.DialTimeout}
	var (
		conn net.Conn
		err  error
	)
	if opt.TLS != nil {
		tlsDialer := tls.Dialer{NetDialer: &dialer, Config: opt.TLS}
		conn, err = tlsDialer.DialContext(ctx, "tcp", opt.Address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", opt.Address)
	}
	if err != nil {
		return errors.Wrap(err, "dial")
	}

	prev := c.conn
	c.conn = conn
	c.reader = proto.NewReader(conn)
	c.writer = proto.NewWriter(conn, new(proto.Buffer))
	c.writer.SetFlushThreshold(opt.CompressBlockSize)
	c.info.Database = opt.Database

	if err := c.handshake(ctx, opt); err != nil {
		_ = conn.Close()
		c.conn = prev
		return errors.Wrap(err, "handshake")
	}
	_ = prev.Close()
	c.closed.Store(false)
	return nil
}
