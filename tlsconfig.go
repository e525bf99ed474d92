package ch

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/go-faster/errors"
)

// defaultTLSConfig is used whenever a DSN or Options requests a secure
// connection without supplying its own *tls.Config. It enables standard
// certificate verification against the system trust store. A custom CA
// bundle can be supplied through Options.TLSCACertPath; callers needing
// client certificates must build their own tls.Config and set Options.TLS
// directly.
func defaultTLSConfig() *tls.Config {
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// loadCACertPool reads a PEM-encoded CA bundle from path, for
// Options.TLSCACertPath.
func loadCACertPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read ca bundle")
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificates found in %q", path)
	}
	return pool, nil
}
