package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUDP_QueryRoundTrips(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer conn.Close()

	go func() {
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		reply := append([]byte{}, buf[:n]...)
		reply[2] = 0x80 // set QR
		conn.WriteToUDP(reply, addr)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := UDP{}.Query(ctx, conn.LocalAddr().String(), []byte{0x00, 0x01, 0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, byte(0x80), reply[2])
}

func TestUDP_QueryFailsWithNoResponder(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	addr := conn.LocalAddr().String()
	conn.Close() // nothing listens now, reads will fail fast via connection refused or timeout

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err = UDP{}.Query(ctx, addr, []byte{0x00, 0x01})
	require.Error(t, err)
}

func TestWithDefaultPort(t *testing.T) {
	require.Equal(t, "1.1.1.1:53", withDefaultPort("1.1.1.1", "53"))
	require.Equal(t, "1.1.1.1:8053", withDefaultPort("1.1.1.1:8053", "53"))
}
