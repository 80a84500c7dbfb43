package nameserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsIPv4LiteralWithOptionalPort(t *testing.T) {
	require.NoError(t, Validate("8.8.8.8", false))
	require.NoError(t, Validate("8.8.8.8:53", false))
}

func TestValidate_RejectsNonIPv4Literal(t *testing.T) {
	err := Validate("not-an-ip", false)
	require.Error(t, err)
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, ErrNotIPv4Literal, nerr.Kind)
}

func TestValidate_RejectsIPv6Literal(t *testing.T) {
	require.Error(t, Validate("::1", false))
}

func TestValidate_HTTPSRequiresURL(t *testing.T) {
	require.NoError(t, Validate("https://dns.example/dns-query", true))
	err := Validate("8.8.8.8", true)
	require.Error(t, err)
	var nerr *Error
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, ErrHTTPSURLRequired, nerr.Kind)
}

func TestResolve_ExplicitAddressWins(t *testing.T) {
	ns, err := Resolve("9.9.9.9", false)
	require.NoError(t, err)
	require.Equal(t, "9.9.9.9", ns)
}

func TestResolve_HTTPSWithoutExplicitURLFails(t *testing.T) {
	_, err := Resolve("", true)
	require.Error(t, err)
}
