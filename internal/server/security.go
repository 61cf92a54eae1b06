package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/gc02/usuario-server/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener opens listeners that terminate TLS with a certificate loaded from disk.
type TLSListener struct {
	certFile string
	keyFile  string
}

func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Listen loads the key pair on every call so a rotated certificate is picked up on restart.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
}

// PlainListener opens unencrypted listeners, used behind a terminating proxy or in development.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
