package ch

import (
	"crypto/tls"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/nativeproto/ch/compress"
	"github.com/nativeproto/ch/proto"
)

// AltHost is an additional host:port pair parsed from a DSN's alt_hosts
// query parameter, for callers implementing their own failover.
type AltHost struct {
	Host string
	Port int
}

// DSN holds everything ParseDSN extracted from a connection URL that does
// not fit Options directly.
type DSN struct {
	Options  Options
	AltHosts []AltHost
}

// ParseDSN parses a clickhouse:// or clickhouses:// URL into Options.
//
// Recognized forms:
//
//	clickhouse://[user[:password]@]host[:port][/database][?key=value&...]
//	clickhouses://... (equivalent to clickhouse://...?secure=true)
//
// Recognized query parameters: compression, secure, client_name,
// connect_timeout, send_receive_timeout, sync_request_timeout,
// compress_block_size, verify, ca_certs, ssl_version, ciphers, alt_hosts.
// Any other key is folded into Options.Settings as a server setting.
func ParseDSN(raw string) (DSN, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return DSN{}, errors.Wrap(err, "parse url")
	}
	switch u.Scheme {
	case "clickhouse", "clickhouses":
	default:
		return DSN{}, errors.Errorf("unsupported scheme %q", u.Scheme)
	}

	var out DSN
	opt := &out.Options
	opt.Address = u.Host
	if u.Scheme == "clickhouses" {
		opt.TLS = defaultTLSConfig()
	}
	if u.User != nil {
		opt.User = u.User.Username()
		opt.Password, _ = u.User.Password()
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		opt.Database = db
	}

	for key, values := range u.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		value := values[0]
		switch key {
		case "compression":
			method, level, enabled, err := parseCompression(value)
			if err != nil {
				return DSN{}, err
			}
			opt.CompressionMethod = method
			opt.CompressionLevel = level
			if enabled {
				opt.Compression = proto.CompressionEnabled
			} else {
				opt.Compression = proto.CompressionDisabled
			}
		case "secure":
			if asBool(value) {
				opt.TLS = defaultTLSConfig()
			} else {
				opt.TLS = nil
			}
		case "client_name":
			opt.ClientVersion.Name = value
		case "connect_timeout":
			d, err := parseSecondsDuration(value)
			if err != nil {
				return DSN{}, errors.Wrap(err, "connect_timeout")
			}
			opt.DialTimeout = d
		case "send_receive_timeout", "sync_request_timeout":
			d, err := parseSecondsDuration(value)
			if err != nil {
				return DSN{}, errors.Wrapf(err, "%s", key)
			}
			opt.SendReceiveTimeout = d
		case "compress_block_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return DSN{}, errors.Wrap(err, "compress_block_size")
			}
			opt.CompressBlockSize = n
		case "verify":
			ensureTLS(opt).InsecureSkipVerify = !asBool(value)
		case "ca_certs":
			// Path is a caller concern: ParseDSN does no I/O, so the path is
			// carried through for Dial to load.
			ensureTLS(opt)
			opt.TLSCACertPath = value
		case "ssl_version", "ciphers":
			// OpenSSL protocol-version names and cipher-suite lists don't map
			// onto crypto/tls's typed API; accepted (so they don't leak into
			// Settings) and otherwise ignored. Build a *tls.Config directly
			// and set Options.TLS for this level of control.
		case "alt_hosts":
			for _, hostport := range strings.Split(value, ",") {
				host, portStr, err := splitHostPort(hostport)
				if err != nil {
					return DSN{}, errors.Wrapf(err, "alt_hosts %q", hostport)
				}
				port, err := strconv.Atoi(portStr)
				if err != nil {
					return DSN{}, errors.Wrapf(err, "alt_hosts port %q", hostport)
				}
				out.AltHosts = append(out.AltHosts, AltHost{Host: host, Port: port})
			}
		default:
			opt.Settings = append(opt.Settings, Setting{Key: key, Value: value})
		}
	}

	return out, nil
}

// parseCompression resolves a DSN compression= value to a method, and for
// "lz4hc" a nonzero Compressor.Level selecting the high-compression LZ4
// encoder (LZ4HC is not a distinct wire method, see compress.Method).
func parseCompression(value string) (method compress.Method, level int, enabled bool, err error) {
	switch strings.ToLower(value) {
	case "lz4":
		return compress.LZ4, 0, true, nil
	case "lz4hc":
		return compress.LZ4, 9, true, nil
	case "zstd":
		return compress.ZSTD, 0, true, nil
	case "", "none", "false":
		return 0, 0, false, nil
	case "true":
		return compress.LZ4, 0, true, nil
	default:
		return 0, 0, false, errors.Errorf("unknown compression %q", value)
	}
}

func asBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func splitHostPort(hostport string) (host, port string, err error) {
	idx := strings.LastIndexByte(hostport, ':')
	if idx < 0 {
		return "", "", errors.New("missing port")
	}
	return hostport[:idx], hostport[idx+1:], nil
}

func parseSecondsDuration(v string) (time.Duration, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Second)), nil
}

// ensureTLS returns opt.TLS, creating it via defaultTLSConfig if a reserved
// DSN key needs to set a field on it but no secure=true/clickhouses://
// scheme has done so yet.
func ensureTLS(opt *Options) *tls.Config {
	if opt.TLS == nil {
		opt.TLS = defaultTLSConfig()
	}
	return opt.TLS
}
