package output

import (
	"fmt"
	"io"

	"github.com/vulnverified/scout/internal/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

// WriteHeader prints the scout banner.
func WriteHeader(w io.Writer, noColor bool) {
	if noColor {
		fmt.Fprintf(w, "scout %s — single-target recon\n\n", Version)
	} else {
		fmt.Fprintf(w, "\033[1mscout %s\033[0m — single-target recon\n\n", Version)
	}
}

// WriteSummary prints the post-run summary, rendering every check that
// did not run as an explicit skipped or failed state.
func WriteSummary(w io.Writer, report *engine.Report, artifactPath string, noColor bool) {
	bold := func(s string) string {
		if noColor {
			return s
		}
		return "\033[1m" + s + "\033[0m"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", bold("Target:"), report.Target)

	if report.Resolution.Resolved {
		fmt.Fprintf(w, "%s %s\n", bold("IP address:"), report.Resolution.Address)
	} else {
		fmt.Fprintf(w, "%s not found\n", bold("IP address:"))
	}

	if report.Whois.Info != nil {
		fmt.Fprintf(w, "%s %s (expires %s)\n", bold("Registrar:"),
			orDash(report.Whois.Info.Registrar), orDash(report.Whois.Info.ExpirationDate))
	} else {
		fmt.Fprintf(w, "%s lookup failed\n", bold("WHOIS:"))
	}

	if report.DNS.Skipped {
		fmt.Fprintf(w, "%s skipped for IP address\n", bold("DNS records:"))
	} else {
		fmt.Fprintf(w, "%s %d record types answered\n", bold("DNS records:"), len(report.DNS.Records))
	}

	if report.Ports.Skipped {
		fmt.Fprintf(w, "%s skipped due to DNS resolution failure\n", bold("Open ports:"))
	} else {
		fmt.Fprintf(w, "%s %d of %d probed\n", bold("Open ports:"),
			len(report.Ports.OpenPorts()), len(report.Ports.Results))
	}

	if report.Headers != nil {
		fmt.Fprintf(w, "%s %d via %s\n", bold("HTTP headers:"),
			len(report.Headers.Headers), report.Headers.Scheme)
	} else {
		fmt.Fprintf(w, "%s no response on https or http\n", bold("HTTP headers:"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Report saved to %s\n", artifactPath)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
