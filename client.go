// Package dnsx is the library surface: construct a Client from Options,
// call Run to execute every (domain, type, class) query it describes, and
// get back parsed responses in declaration order.
package dnsx

import (
	"context"
	"time"

	"github.com/dnsscience/dnsx/internal/orchestrator"
	"github.com/dnsscience/dnsx/internal/transport"
	"github.com/dnsscience/dnsx/internal/wire"
)

// Re-exported so callers of this package never need to import the
// internal packages directly.
type (
	RecordType = wire.RecordType
	QClass     = wire.QClass
	Response   = wire.Response
	Answer     = wire.Answer
	Tweaks     = wire.Tweaks
	Transport  = transport.Kind
)

const (
	TransportUDP   = transport.KindUDP
	TransportTCP   = transport.KindTCP
	TransportTLS   = transport.KindTLS
	TransportHTTPS = transport.KindHTTPS
)

// Options configures a Client.
type Options struct {
	Domains    []string
	Types      []RecordType
	Classes    []QClass
	Nameserver string
	Transport  Transport
	Timeout    time.Duration
	Retries    int
	TxID       *uint16
	RD         bool
	Tweaks     Tweaks

	// QueriesPerSecond paces outbound queries when > 0.
	QueriesPerSecond float64
}

// DefaultOptions returns baseline Options: type A, class IN, UDP
// transport, 5s timeout, 3 retries, recursion desired.
func DefaultOptions() Options {
	o := orchestrator.DefaultOptions()
	return Options{
		Types:     o.Types,
		Classes:   o.Classes,
		Transport: o.Transport,
		Timeout:   o.Timeout,
		Retries:   o.Retries,
		RD:        o.RD,
	}
}

// Client executes DNS queries for a fixed set of Options.
type Client struct {
	opts Options
}

// NewClient validates and normalises opts (resolving a nameserver when
// opts.Nameserver is blank) and returns a Client ready to Run.
func NewClient(opts Options) (*Client, error) {
	internal := toInternal(opts)

	if err := orchestrator.Validate(internal); err != nil {
		return nil, err
	}
	if internal.Nameserver == "" {
		if err := orchestrator.ResolveNameserver(&internal); err != nil {
			return nil, err
		}
	}

	opts.Nameserver = internal.Nameserver
	return &Client{opts: opts}, nil
}

// Run executes every query in the Client's (domains × types × classes)
// cartesian product and returns their parsed responses in declaration
// order, retrying with backoff and falling back from UDP to TCP on
// truncated responses.
func (c *Client) Run(ctx context.Context) ([]*Response, error) {
	return orchestrator.Run(ctx, toInternal(c.opts))
}

func toInternal(opts Options) orchestrator.Options {
	return orchestrator.Options{
		Domains:          opts.Domains,
		Types:            opts.Types,
		Classes:          opts.Classes,
		Nameserver:       opts.Nameserver,
		Transport:        opts.Transport,
		Timeout:          opts.Timeout,
		Retries:          opts.Retries,
		TxID:             opts.TxID,
		RD:               opts.RD,
		Tweaks:           opts.Tweaks,
		QueriesPerSecond: opts.QueriesPerSecond,
	}
}
