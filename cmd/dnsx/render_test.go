package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dnsscience/dnsx"
	"github.com/dnsscience/dnsx/internal/wire"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *dnsx.Response {
	return &wire.Response{
		ID:    42,
		Flags: wire.Flags{QR: true, RD: true, RA: true},
		Answers: []wire.Answer{
			{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN, TTL: 300, Data: wire.RData{Str: "93.184.216.34"}},
		},
	}
}

func TestRender_ShortPrintsOnlyValues(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, []*dnsx.Response{sampleResponse()}, &cliOptions{short: true})
	require.Equal(t, "93.184.216.34\n", buf.String())
}

func TestRender_JSONIsValid(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, []*dnsx.Response{sampleResponse()}, &cliOptions{json: true})

	var decoded []wire.Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, uint16(42), decoded[0].ID)
}

func TestRender_TextIncludesAnswerSection(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, []*dnsx.Response{sampleResponse()}, &cliOptions{})
	require.Contains(t, buf.String(), "ANSWER SECTION")
	require.Contains(t, buf.String(), "93.184.216.34")
}
