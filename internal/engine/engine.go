package engine

import (
	"context"
	"fmt"
	"time"
)

// Config holds the runtime configuration for a scout run.
type Config struct {
	Target      string
	Ports       []int
	Timeout     time.Duration // per-connection probe timeout
	HTTPTimeout time.Duration // header fetch timeout
	Concurrency int           // prober worker bound
}

// Stages holds the injectable stage implementations.
type Stages struct {
	Resolver AddressResolver
	Whois    WhoisClient
	Records  DNSCollector
	Scanner  PortScanner
	Headers  HeaderFetcher
}

// ProgressReporter is called by the engine to report stage progress.
type ProgressReporter interface {
	Stage(num, total int, msg string)
	Detail(msg string)
	Warn(msg string)
}

const totalStages = 5

// Run executes the recon pipeline for one target and always produces a
// Report: collector failures become tagged report values, never errors.
// Only the port prober runs work concurrently; every other stage blocks
// until its call completes or times out.
func Run(ctx context.Context, cfg Config, stages Stages, progress ProgressReporter) (*Report, error) {
	report := &Report{Target: cfg.Target}
	kind := Classify(cfg.Target)

	// Stage 1: resolution. Address literals short-circuit with zero lookups.
	progress.Stage(1, totalStages, "Resolving target address...")
	if kind == AddressLiteral {
		report.Resolution = Resolution{Address: cfg.Target, Resolved: true}
		progress.Detail("Target is an address literal, no lookup needed")
	} else {
		addr, err := stages.Resolver.Resolve(ctx, cfg.Target)
		if err != nil {
			progress.Warn("Could not resolve hostname")
		} else {
			report.Resolution = Resolution{Address: addr, Resolved: true}
			progress.Detail(fmt.Sprintf("IP address: %s", addr))
		}
	}

	// Stage 2: registration metadata. Attempted for both names and addresses.
	progress.Stage(2, totalStages, "Collecting WHOIS registration data...")
	info, err := stages.Whois.Lookup(ctx, cfg.Target)
	if err != nil {
		report.Whois = WhoisResult{Err: err.Error()}
		progress.Warn(fmt.Sprintf("WHOIS lookup failed: %s", err))
	} else {
		report.Whois = WhoisResult{Info: info}
		progress.Detail(fmt.Sprintf("Registrar: %s", info.Registrar))
	}

	// Stage 3: DNS records. Record lookups are defined only for names.
	progress.Stage(3, totalStages, "Enumerating DNS records...")
	if kind == AddressLiteral {
		report.DNS = DNSRecords{Skipped: true}
		progress.Warn("DNS lookup skipped for IP address")
	} else {
		records, err := stages.Records.Collect(ctx, cfg.Target)
		if err != nil {
			progress.Warn(fmt.Sprintf("DNS enumeration: %s", err))
		}
		report.DNS = DNSRecords{Records: records}
		progress.Detail(fmt.Sprintf("%d record types answered", len(records)))
	}

	// Stage 4: port probe. Never dials without a resolved address.
	progress.Stage(4, totalStages, fmt.Sprintf("Probing %d common ports...", len(cfg.Ports)))
	if !report.Resolution.Resolved {
		report.Ports = PortScan{Skipped: true}
		progress.Warn("Port scan skipped due to DNS resolution failure")
	} else {
		results, err := stages.Scanner.Scan(ctx, report.Resolution.Address, cfg.Ports, cfg.Concurrency, cfg.Timeout)
		if err != nil {
			progress.Warn(fmt.Sprintf("Port scan: %s", err))
		}
		report.Ports = PortScan{Results: results}
		progress.Detail(fmt.Sprintf("%d open ports", len(report.Ports.OpenPorts())))
	}

	// Stage 5: HTTP headers, first protocol that answers wins.
	progress.Stage(5, totalStages, "Fetching HTTP response headers...")
	headers, err := stages.Headers.Fetch(ctx, cfg.Target, cfg.HTTPTimeout)
	if err != nil {
		progress.Warn(fmt.Sprintf("Header fetch: %s", err))
	} else if headers == nil {
		progress.Warn("No HTTP response on https or http")
	} else {
		report.Headers = headers
		progress.Detail(fmt.Sprintf("%d headers via %s", len(headers.Headers), headers.Scheme))
	}

	return report, nil
}
