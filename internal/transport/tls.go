package transport

import (
	"context"
	"crypto/tls"
	"net"
)

// TLS is the DNS-over-TLS (DoT) client transport: identical length-framing
// to TCP, carried over a certificate-verified TLS connection with SNI set
// to the nameserver's host.
type TLS struct{}

// Query dials nameserver over TLS and exchanges one length-prefixed
// request/reply pair. A certificate the peer cannot authenticate surfaces
// as ErrTLSAuthFailed rather than the generic transport error.
func (TLS) Query(ctx context.Context, nameserver string, req []byte) ([]byte, error) {
	addr := withDefaultPort(nameserver, "853")

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, genericErr(err)
	}

	var dialer net.Dialer
	tlsDialer := tls.Dialer{
		NetDialer: &dialer,
		Config: &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := tlsDialer.DialContext(ctx, "tcp4", addr)
	if err != nil {
		if _, ok := err.(*tls.CertificateVerificationError); ok {
			return nil, &Error{Kind: ErrTLSAuthFailed, Err: err}
		}
		return nil, genericErr(err)
	}
	defer conn.Close()

	return queryFramed(ctx, conn, req)
}
