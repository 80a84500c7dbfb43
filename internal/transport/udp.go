package transport

import (
	"context"
	"net"
)

// UDP is the plain UDP client transport: one request datagram, one reply
// datagram, default port 53.
type UDP struct{}

// Query sends req as a single UDP datagram to nameserver and returns the
// first reply datagram verbatim.
func (UDP) Query(ctx context.Context, nameserver string, req []byte) ([]byte, error) {
	addr := withDefaultPort(nameserver, "53")

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp4", addr)
	if err != nil {
		return nil, genericErr(err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, genericErr(err)
		}
	}

	if _, err := conn.Write(req); err != nil {
		if ctx.Err() != nil {
			return nil, timeoutErr(err)
		}
		return nil, genericErr(err)
	}

	// A non-EDNS UDP reply never exceeds 512 octets; a server with more to
	// say sets TC and the caller falls back to TCP, so this tier is never
	// too small for a well-formed response.
	buf := getBuffer(smallBufferSize)
	defer putBuffer(buf)

	n, err := conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, timeoutErr(err)
		}
		return nil, genericErr(err)
	}

	reply := make([]byte, n)
	copy(reply, buf[:n])
	return reply, nil
}
