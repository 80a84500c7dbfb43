// Package txid generates DNS transaction ids.
//
// A one-shot client that opens and releases one socket per query has no
// long-lived pool of ephemeral ports to defend against Kaminsky-style
// cache poisoning, so the only hardening that applies here is using a
// cryptographically random transaction id rather than a predictable one.
package txid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Generate returns a cryptographically random 16-bit transaction id.
//
// math/rand must never be used here: a predictable id is exactly what lets
// an off-path attacker forge a matching response.
func Generate() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("txid: crypto/rand failed: %v", err))
	}
	return binary.BigEndian.Uint16(buf[:])
}
