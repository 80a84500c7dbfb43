// Package validate checks domain names, record-type/class tokens, and CLI
// option combinations before a query is ever encoded. Domain-name checking
// follows RFC 1035 §3.1's label/wire-length rules.
package validate

import (
	"strings"

	"github.com/dnsscience/dnsx/internal/transport"
	"github.com/dnsscience/dnsx/internal/wire"
)

const (
	maxLabelLength  = 63
	maxNameWireSize = 255
)

// ErrorKind names the ways an option set can fail validation.
type ErrorKind int

const (
	ErrInvalidDomain ErrorKind = iota
	ErrUnknownRecordType
	ErrUnknownClass
	ErrConflictingTransports
	ErrHTTPSRequiresURL
	ErrNegativeRetries
	ErrNegativeTimeout
)

// Error reports a single malformed option or argument.
type Error struct {
	Kind  ErrorKind
	Value string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownRecordType:
		return "validate: unknown record type: " + e.Value
	case ErrUnknownClass:
		return "validate: unknown class: " + e.Value
	case ErrConflictingTransports:
		return "validate: only one of -U/-T/-S/-H may be given"
	case ErrHTTPSRequiresURL:
		return "validate: --https requires a nameserver URL starting with https://"
	case ErrNegativeRetries:
		return "validate: retries must be >= 0"
	case ErrNegativeTimeout:
		return "validate: timeout must be >= 0"
	default:
		return "validate: invalid domain name: " + e.Value
	}
}

// Domain validates name per RFC 1035 §3.1: total wire length <= 255 bytes,
// each label 1-63 bytes, no leading/trailing/consecutive dots, and
// characters restricted to letters, digits, and hyphen.
func Domain(name string) error {
	if name == "" {
		return &Error{Kind: ErrInvalidDomain, Value: name}
	}

	labels := strings.Split(name, ".")

	wireLen := 1 // root terminator
	for _, label := range labels {
		wireLen += 1 + len(label)
	}
	if wireLen > maxNameWireSize {
		return &Error{Kind: ErrInvalidDomain, Value: name}
	}

	for _, label := range labels {
		if !validLabel(label) {
			return &Error{Kind: ErrInvalidDomain, Value: name}
		}
	}
	return nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > maxLabelLength {
		return false
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return false
	}
	for _, ch := range label {
		if !validDomainChar(ch) {
			return false
		}
	}
	return true
}

func validDomainChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-'
}

// RecordType normalizes a type token, which may be a mnemonic ("A", "aaaa")
// or a decimal number ("28"), into a wire.RecordType.
func RecordType(token string) (wire.RecordType, error) {
	if rt, ok := wire.ParseRecordType(token); ok {
		return rt, nil
	}
	if n, ok := parseUint16(token); ok {
		return wire.RecordType(n), nil
	}
	return 0, &Error{Kind: ErrUnknownRecordType, Value: token}
}

// Class normalizes a class token ("IN", "CH", or a decimal number) into a
// wire.QClass.
func Class(token string) (wire.QClass, error) {
	if c, ok := wire.ParseQClass(token); ok {
		return c, nil
	}
	if n, ok := parseUint16(token); ok {
		return wire.QClass(n), nil
	}
	return 0, &Error{Kind: ErrUnknownClass, Value: token}
}

func parseUint16(s string) (uint16, bool) {
	if s == "" {
		return 0, false
	}
	var v uint32
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		v = v*10 + uint32(ch-'0')
		if v > 0xFFFF {
			return 0, false
		}
	}
	return uint16(v), true
}

// Transports enforces the mutual exclusivity of the -U/-T/-S/-H flags: at
// most one of the four may be requested explicitly.
func Transports(requested []transport.Kind) error {
	if len(requested) > 1 {
		return &Error{Kind: ErrConflictingTransports}
	}
	return nil
}

// HTTPSRequiresURL checks that an https-transport query was given a
// nameserver URL.
func HTTPSRequiresURL(nameserver string, isHTTPS bool) error {
	if isHTTPS && !strings.HasPrefix(nameserver, "https://") {
		return &Error{Kind: ErrHTTPSRequiresURL, Value: nameserver}
	}
	return nil
}

// Retries rejects a negative retry count. Zero means one attempt with no
// retry.
func Retries(n int) error {
	if n < 0 {
		return &Error{Kind: ErrNegativeRetries}
	}
	return nil
}

// Timeout rejects a negative timeout.
func Timeout(seconds int) error {
	if seconds < 0 {
		return &Error{Kind: ErrNegativeTimeout}
	}
	return nil
}
