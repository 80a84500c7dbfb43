package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// dohContentType is the wire media type mandated by RFC 8484 §4.1.
const dohContentType = "application/dns-message"

// HTTPS is the DNS-over-HTTPS (DoH) client transport: a POST of the raw
// encoded message with Content-Type application/dns-message. The
// nameserver string is the full request URL (validated to start with
// "https://" by internal/validate before a query ever reaches here).
type HTTPS struct{}

// Query POSTs req to nameserver and returns the response body, provided the
// server answers 200 with a matching content-type.
func (HTTPS) Query(ctx context.Context, nameserver string, req []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, nameserver, bytes.NewReader(req))
	if err != nil {
		return nil, genericErr(err)
	}
	httpReq.Header.Set("Content-Type", dohContentType)
	httpReq.Header.Set("Accept", dohContentType)

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, timeoutErr(err)
		}
		return nil, genericErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: ErrHTTPStatus, HTTPStatus: resp.StatusCode}
	}

	ct := resp.Header.Get("Content-Type")
	if ct != dohContentType {
		return nil, &Error{Kind: ErrHTTPContentType, HTTPContentType: ct}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, genericErr(err)
	}

	return body, nil
}
