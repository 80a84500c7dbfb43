// Command dnsx is a DNS resolver client CLI: given domains and/or type
// tokens, it builds and sends DNS queries and prints the parsed answers.
// Flags and positional domain/type tokens may be interspersed in any
// order, so argv is scanned by a small hand-rolled left-to-right parser
// rather than stdlib flag, which requires flags before positionals.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dnsscience/dnsx"
	"github.com/dnsscience/dnsx/internal/metrics"
	"github.com/dnsscience/dnsx/internal/transport"
	"github.com/dnsscience/dnsx/internal/validate"
	"github.com/dnsscience/dnsx/internal/wire"
)

var recordTypeTokens = map[string]bool{
	"A": true, "AAAA": true, "NS": true, "MX": true, "TXT": true,
	"SRV": true, "PTR": true, "CNAME": true, "SOA": true, "CAA": true,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dnsx:", err)
		return 1
	}

	if cli.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cli.metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintln(os.Stderr, "dnsx: metrics server:", err)
			}
		}()
	}

	opts, err := toClientOptions(cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dnsx:", err)
		return 1
	}

	client, err := dnsx.NewClient(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dnsx:", err)
		return 1
	}

	if cli.verbose {
		fmt.Fprintf(os.Stderr, "dnsx: querying %v over %v via %s, %d retries, %s timeout\n",
			opts.Domains, opts.Types, opts.Transport, opts.Retries, opts.Timeout)
	}

	ctx := context.Background()
	start := time.Now()
	responses, err := client.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dnsx:", err)
		return 1
	}

	render(os.Stdout, responses, cli)
	if cli.showTime {
		fmt.Fprintf(os.Stdout, ";; total query time: %s\n", elapsed)
	}
	return 0
}

// cliOptions is the raw, un-normalised set of values scanned from argv.
type cliOptions struct {
	domains     []string
	types       []string
	nameserver  string
	class       string
	edns        string
	txid        string
	tweaks      []string
	udp, tcp    bool
	tls, https  bool
	short, json bool
	color       string
	seconds     bool
	showTime    bool
	verbose     bool
	metricsAddr string
	retries     int
	timeout     int
}

// parseArgs scans args left to right. A bare token becomes a domain unless
// its uppercased form names a record type, in which case it is added to
// types instead; everything introduced by a recognised flag is consumed by
// that flag.
func parseArgs(args []string) (*cliOptions, error) {
	cli := &cliOptions{retries: 3, timeout: 5}

	i := 0
	next := func(flagName string) (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flagName)
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-q", "--query":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.domains = append(cli.domains, v)
		case "-t", "--type":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.types = append(cli.types, v)
		case "-n", "--nameserver":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.nameserver = v
		case "--class":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.class = v
		case "--edns":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.edns = v
		case "--txid":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.txid = v
		case "-Z":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.tweaks = append(cli.tweaks, v)
		case "-U", "--udp":
			cli.udp = true
		case "-T", "--tcp":
			cli.tcp = true
		case "-S", "--tls":
			cli.tls = true
		case "-H", "--https":
			cli.https = true
		case "-1", "--short":
			cli.short = true
		case "-J", "--json":
			cli.json = true
		case "--color":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.color = v
		case "--seconds":
			cli.seconds = true
		case "--time":
			cli.showTime = true
		case "--verbose", "-v":
			cli.verbose = true
		case "--metrics-addr":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			cli.metricsAddr = v
		case "--retries":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				return nil, fmt.Errorf("--retries: %w", convErr)
			}
			cli.retries = n
		case "--timeout":
			v, err := next(a)
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				return nil, fmt.Errorf("--timeout: %w", convErr)
			}
			cli.timeout = n
		default:
			if strings.HasPrefix(a, "-") {
				return nil, fmt.Errorf("unknown option: %s", a)
			}
			if recordTypeTokens[strings.ToUpper(a)] {
				cli.types = append(cli.types, a)
			} else {
				cli.domains = append(cli.domains, a)
			}
		}
	}

	return cli, nil
}

func toClientOptions(cli *cliOptions) (dnsx.Options, error) {
	opts := dnsx.DefaultOptions()
	opts.Domains = cli.domains
	opts.Nameserver = cli.nameserver
	opts.Retries = cli.retries
	opts.Timeout = time.Duration(cli.timeout) * time.Second

	kinds := transportKinds(cli)
	if err := validate.Transports(kinds); err != nil {
		return opts, err
	}
	if len(kinds) == 1 {
		opts.Transport = kinds[0]
	}

	if len(cli.types) > 0 {
		types := make([]wire.RecordType, 0, len(cli.types))
		for _, tok := range cli.types {
			rt, err := validate.RecordType(tok)
			if err != nil {
				return opts, err
			}
			types = append(types, rt)
		}
		opts.Types = types
	}

	if cli.class != "" {
		c, err := validate.Class(cli.class)
		if err != nil {
			return opts, err
		}
		opts.Classes = []wire.QClass{c}
	}

	if cli.txid != "" {
		n, err := strconv.ParseUint(cli.txid, 10, 16)
		if err != nil {
			return opts, fmt.Errorf("--txid: %w", err)
		}
		id := uint16(n)
		opts.TxID = &id
	}

	opts.Tweaks = parseTweaks(cli.tweaks)

	return opts, nil
}

func transportKinds(cli *cliOptions) []transport.Kind {
	var kinds []transport.Kind
	if cli.udp {
		kinds = append(kinds, transport.KindUDP)
	}
	if cli.tcp {
		kinds = append(kinds, transport.KindTCP)
	}
	if cli.tls {
		kinds = append(kinds, transport.KindTLS)
	}
	if cli.https {
		kinds = append(kinds, transport.KindHTTPS)
	}
	return kinds
}

// parseTweaks recognises aa/authoritative, ad/authentic,
// cd/checking-disabled, and bufsize=<n>; unknown tokens are silently
// ignored.
func parseTweaks(tokens []string) wire.Tweaks {
	var t wire.Tweaks
	for _, tok := range tokens {
		switch {
		case tok == "aa" || tok == "authoritative":
			t.AA = true
		case tok == "ad" || tok == "authentic":
			t.AD = true
		case tok == "cd" || tok == "checking-disabled":
			t.CD = true
		case strings.HasPrefix(tok, "bufsize="):
			if n, err := strconv.ParseUint(strings.TrimPrefix(tok, "bufsize="), 10, 16); err == nil {
				t.UDPPayloadSize = uint16(n)
			}
		}
	}
	return t
}
