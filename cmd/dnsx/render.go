package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dnsscience/dnsx"
)

// render prints responses per the --short/--json/--seconds toggles.
func render(w io.Writer, responses []*dnsx.Response, cli *cliOptions) {
	if cli.json {
		renderJSON(w, responses)
		return
	}
	for _, resp := range responses {
		renderText(w, resp, cli)
	}
}

func renderJSON(w io.Writer, responses []*dnsx.Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(responses)
}

func renderText(w io.Writer, resp *dnsx.Response, cli *cliOptions) {
	if cli.short {
		for _, a := range resp.Answers {
			fmt.Fprintln(w, answerValue(a))
		}
		return
	}

	fmt.Fprintf(w, ";; ->>HEADER<<- opcode: QUERY, status: RCODE%d, id: %d\n", resp.Flags.RCode, resp.ID)
	fmt.Fprintf(w, ";; flags: qr%s%s%s%s%s%s%s\n",
		flagFlag(resp.Flags.AA, " aa"), flagFlag(resp.Flags.TC, " tc"),
		flagFlag(resp.Flags.RD, " rd"), flagFlag(resp.Flags.RA, " ra"),
		flagFlag(resp.Flags.AD, " ad"), flagFlag(resp.Flags.CD, " cd"), "")

	if len(resp.Answers) == 0 {
		fmt.Fprintln(w, ";; no answers")
		return
	}

	fmt.Fprintln(w, ";; ANSWER SECTION:")
	for _, a := range resp.Answers {
		ttl := ttlValue(a.TTL, cli.seconds)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, ttl, a.Class.String(), a.Type.String(), answerValue(a))
	}
}

func flagFlag(set bool, token string) string {
	if set {
		return token
	}
	return ""
}

func ttlValue(ttl uint32, seconds bool) string {
	if seconds {
		return fmt.Sprintf("%ds", ttl)
	}
	return fmt.Sprintf("%d", ttl)
}

func answerValue(a dnsx.Answer) string {
	switch {
	case a.Data.Str != "":
		return a.Data.Str
	case a.Data.MXVal.Exchange != "":
		return fmt.Sprintf("%d %s", a.Data.MXVal.Preference, a.Data.MXVal.Exchange)
	default:
		return a.Data.Hex()
	}
}
