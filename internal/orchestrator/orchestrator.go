// Package orchestrator drives a single run from a set of options down to
// a list of parsed responses: it expands the domain/type/class cartesian
// product, resolves the nameserver, and attempts each query with retries,
// exponential backoff, and UDP→TCP truncation fallback. The optional
// pacing limiter below uses golang.org/x/time/rate the same way a
// token-bucket rate limiter would gate any outbound call stream.
package orchestrator

import (
	"context"
	"strconv"
	"time"

	"github.com/dnsscience/dnsx/internal/metrics"
	"github.com/dnsscience/dnsx/internal/nameserver"
	"github.com/dnsscience/dnsx/internal/transport"
	"github.com/dnsscience/dnsx/internal/txid"
	"github.com/dnsscience/dnsx/internal/validate"
	"github.com/dnsscience/dnsx/internal/wire"
	"golang.org/x/time/rate"
)

// ErrorKind names the control-flow failures specific to orchestration.
type ErrorKind int

const (
	ErrNoDomains ErrorKind = iota
	ErrNoResponses
)

// Error is a control-flow failure that is not a validation, wire, or
// transport error.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	if e.Kind == ErrNoDomains {
		return "orchestrator: no domains given"
	}
	return "orchestrator: no responses produced"
}

// Options is the fully-normalised set of inputs to Run, after validation.
type Options struct {
	Domains    []string
	Types      []wire.RecordType
	Classes    []wire.QClass
	Nameserver string
	Transport  transport.Kind
	Timeout    time.Duration
	Retries    int
	TxID       *uint16
	RD         bool
	Tweaks     wire.Tweaks

	// QueriesPerSecond paces outbound queries when > 0. Zero disables
	// pacing; pacing is an explicit, not implicit, opt-in.
	QueriesPerSecond float64
}

// DefaultOptions returns the baseline Options a caller can further
// customize.
func DefaultOptions() Options {
	return Options{
		Types:     []wire.RecordType{wire.TypeA},
		Classes:   []wire.QClass{wire.ClassIN},
		Transport: transport.KindUDP,
		Timeout:   5 * time.Second,
		Retries:   3,
		RD:        true,
	}
}

// Run expands Options into the (domain, type, class) cartesian product and
// executes one query per element, in declaration order, returning their
// parsed responses in the same order.
func Run(ctx context.Context, opts Options) ([]*wire.Response, error) {
	if len(opts.Domains) == 0 {
		return nil, &Error{Kind: ErrNoDomains}
	}

	types := opts.Types
	if len(types) == 0 {
		types = []wire.RecordType{wire.TypeA}
	}
	classes := opts.Classes
	if len(classes) == 0 {
		classes = []wire.QClass{wire.ClassIN}
	}

	var limiter *rate.Limiter
	if opts.QueriesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.QueriesPerSecond), 1)
	}

	retries := opts.Retries
	if retries == 0 {
		retries = 1
	}

	responses := make([]*wire.Response, 0, len(opts.Domains)*len(types)*len(classes))

	for _, domain := range opts.Domains {
		for _, t := range types {
			for _, c := range classes {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return nil, err
					}
				}

				resp, err := runOne(ctx, opts, wire.Query{Name: domain, Type: t, Class: c}, retries)
				if err != nil {
					return nil, err
				}
				responses = append(responses, resp)
			}
		}
	}

	if len(responses) == 0 {
		return nil, &Error{Kind: ErrNoResponses}
	}
	return responses, nil
}

// runOne drives one query through encode, transport attempts with retry
// and backoff, UDP→TCP truncation fallback, and decode.
func runOne(ctx context.Context, opts Options, q wire.Query, retries int) (*wire.Response, error) {
	id := txid.Generate()
	if opts.TxID != nil {
		id = *opts.TxID
	}

	req, err := wire.EncodeQuery(q, wire.EncodeOptions{ID: id, RD: opts.RD, Tweaks: opts.Tweaks})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			metrics.RetriesTotal.WithLabelValues(opts.Transport.String()).Inc()
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := attemptQuery(ctx, opts, req, id)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

// attemptQuery issues req once over opts.Transport, applying UDP→TCP
// truncation fallback when the response's TC bit is set.
func attemptQuery(ctx context.Context, opts Options, req []byte, id uint16) (*wire.Response, error) {
	tctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	tr := transport.For(opts.Transport)
	raw, err := tr.Query(tctx, opts.Nameserver, req)
	metrics.QueryDuration.WithLabelValues(opts.Transport.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	resp, err := decodeAndCheckID(raw, id)
	if err != nil {
		return nil, err
	}

	if opts.Transport == transport.KindUDP && resp.Flags.TC {
		metrics.TruncationFallbacksTotal.Inc()
		tcpCtx, tcpCancel := context.WithTimeout(ctx, opts.Timeout)
		defer tcpCancel()

		raw, err = transport.TCP{}.Query(tcpCtx, opts.Nameserver, req)
		if err != nil {
			return nil, err
		}
		resp, err = decodeAndCheckID(raw, id)
		if err != nil {
			return nil, err
		}
	}

	metrics.QueriesTotal.WithLabelValues(opts.Transport.String(), rcodeLabel(resp.Flags.RCode)).Inc()
	return resp, nil
}

func decodeAndCheckID(raw []byte, wantID uint16) (*wire.Response, error) {
	resp, err := wire.DecodeResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.ID != wantID {
		return nil, &wire.Error{Kind: wire.ErrTxIDMismatch, Msg: "response transaction id does not match request"}
	}
	return resp, nil
}

func rcodeLabel(rcode uint8) string {
	return strconv.Itoa(int(rcode))
}

// ResolveNameserver fills in opts.Nameserver via internal/nameserver when
// the caller left it blank.
func ResolveNameserver(opts *Options) error {
	isHTTPS := opts.Transport == transport.KindHTTPS
	ns, err := nameserver.Resolve(opts.Nameserver, isHTTPS)
	if err != nil {
		return err
	}
	opts.Nameserver = ns
	return nil
}

// Validate runs the option-level checks from internal/validate over opts
// before Run is called.
func Validate(opts Options) error {
	if len(opts.Domains) == 0 {
		return &Error{Kind: ErrNoDomains}
	}
	for _, d := range opts.Domains {
		if err := validate.Domain(d); err != nil {
			return err
		}
	}
	if err := validate.Retries(opts.Retries); err != nil {
		return err
	}
	if err := validate.Timeout(int(opts.Timeout.Seconds())); err != nil {
		return err
	}
	return validate.HTTPSRequiresURL(opts.Nameserver, opts.Transport == transport.KindHTTPS)
}
