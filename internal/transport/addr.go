package transport

import "net"

// withDefaultPort appends ":port" to nameserver if it does not already
// carry one. Used by UDP (53), TCP (53), and TLS (853).
func withDefaultPort(nameserver, port string) string {
	if _, _, err := net.SplitHostPort(nameserver); err == nil {
		return nameserver
	}
	return net.JoinHostPort(nameserver, port)
}
