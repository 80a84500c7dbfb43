package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPS_QueryRoundTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, dohContentType, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		body[2] = 0x80
		w.Header().Set("Content-Type", dohContentType)
		w.Write(body)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := HTTPS{}.Query(ctx, srv.URL, []byte{0x00, 0x01, 0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, byte(0x80), reply[2])
}

func TestHTTPS_QueryRejectsNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := HTTPS{}.Query(ctx, srv.URL, []byte{0x00, 0x01})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrHTTPStatus, kind)
}

func TestHTTPS_QueryRejectsWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte{0x00, 0x01})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := HTTPS{}.Query(ctx, srv.URL, []byte{0x00, 0x01})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrHTTPContentType, kind)
}
