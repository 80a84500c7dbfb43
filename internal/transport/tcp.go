package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"
)

// TCP is the length-framed TCP client transport: a 2-octet big-endian
// length prefix followed by the DNS message.
type TCP struct{}

// Query dials nameserver, writes the 2-byte-length-prefixed req, and reads
// back one length-prefixed reply.
func (TCP) Query(ctx context.Context, nameserver string, req []byte) ([]byte, error) {
	addr := withDefaultPort(nameserver, "53")

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp4", addr)
	if err != nil {
		return nil, genericErr(err)
	}
	defer conn.Close()

	return queryFramed(ctx, conn, req)
}

// queryFramed implements the shared TCP-style length-prefixed request/reply
// exchange used by both TCP and TLS transports.
func queryFramed(ctx context.Context, conn net.Conn, req []byte) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, genericErr(err)
		}
	}

	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(req)))

	if _, err := conn.Write(prefix[:]); err != nil {
		return nil, wrapIOErr(err)
	}
	if _, err := conn.Write(req); err != nil {
		return nil, wrapIOErr(err)
	}

	var replyLen [2]byte
	if _, err := io.ReadFull(conn, replyLen[:]); err != nil {
		return nil, wrapIOErr(err)
	}

	n := binary.BigEndian.Uint16(replyLen[:])
	buf := getBuffer(int(n))
	defer putBuffer(buf)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, wrapIOErr(err)
	}

	reply := make([]byte, n)
	copy(reply, buf)
	return reply, nil
}

func wrapIOErr(err error) *Error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return genericErr(err)
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return timeoutErr(err)
	}
	return genericErr(err)
}
