// Package engine orchestrates the scout recon pipeline.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Literal markers used in the report artifact for checks that did not run.
const (
	markerNotFound     = "Not found"
	markerWhoisFailed  = "Lookup failed"
	markerDNSSkipped   = "Skipped for IP address"
	markerPortsSkipped = "Skipped due to DNS resolution failure"
)

// Resolution is the outcome of hostname-to-address lookup.
// The zero value means the target did not resolve.
type Resolution struct {
	Address  string
	Resolved bool
}

func (r Resolution) MarshalJSON() ([]byte, error) {
	if !r.Resolved {
		return json.Marshal(markerNotFound)
	}
	return json.Marshal(r.Address)
}

func (r *Resolution) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == markerNotFound {
		*r = Resolution{}
		return nil
	}
	*r = Resolution{Address: s, Resolved: true}
	return nil
}

// Registration holds the fields extracted from a WHOIS response.
// Fields absent from the response stay empty rather than failing the lookup.
type Registration struct {
	Registrar      string   `json:"registrar"`
	CreationDate   string   `json:"creation_date"`
	ExpirationDate string   `json:"expiration_date"`
	NameServers    []string `json:"name_servers"`
	Emails         []string `json:"emails"`
}

// WhoisResult is either a parsed Registration or a failure message.
type WhoisResult struct {
	Info *Registration
	Err  string
}

func (w WhoisResult) MarshalJSON() ([]byte, error) {
	if w.Info == nil {
		return json.Marshal(markerWhoisFailed)
	}
	return json.Marshal(w.Info)
}

func (w *WhoisResult) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WhoisResult{Err: s}
		return nil
	}
	var info Registration
	if err := json.Unmarshal(data, &info); err != nil {
		return err
	}
	*w = WhoisResult{Info: &info}
	return nil
}

// DNSRecords maps record-type labels (A, AAAA, MX, ...) to their values.
// Types with no answer are absent keys, not errors.
type DNSRecords struct {
	Records map[string][]string
	Skipped bool
}

func (d DNSRecords) MarshalJSON() ([]byte, error) {
	if d.Skipped {
		return json.Marshal(markerDNSSkipped)
	}
	records := d.Records
	if records == nil {
		records = map[string][]string{}
	}
	return json.Marshal(records)
}

func (d *DNSRecords) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DNSRecords{Skipped: true}
		return nil
	}
	var records map[string][]string
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	*d = DNSRecords{Records: records}
	return nil
}

// PortResult is the terminal outcome for one probed port.
type PortResult struct {
	Port    int
	Open    bool
	Service string
}

// PortScan holds one PortResult per probed port, ascending by port number,
// or the skip marker when the target never resolved.
type PortScan struct {
	Results []PortResult
	Skipped bool
}

// OpenPorts returns only the results that accepted a connection.
func (p PortScan) OpenPorts() []PortResult {
	var open []PortResult
	for _, r := range p.Results {
		if r.Open {
			open = append(open, r)
		}
	}
	return open
}

func (p PortScan) MarshalJSON() ([]byte, error) {
	if p.Skipped {
		return json.Marshal(markerPortsSkipped)
	}
	open := map[string]string{}
	for _, r := range p.Results {
		if r.Open {
			open[strconv.Itoa(r.Port)] = r.Service
		}
	}
	return json.Marshal(open)
}

func (p *PortScan) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PortScan{Skipped: true}
		return nil
	}
	var open map[string]string
	if err := json.Unmarshal(data, &open); err != nil {
		return err
	}
	scan := PortScan{}
	for portStr, service := range open {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid port key %q", portStr)
		}
		scan.Results = append(scan.Results, PortResult{Port: port, Open: true, Service: service})
	}
	sort.Slice(scan.Results, func(i, j int) bool { return scan.Results[i].Port < scan.Results[j].Port })
	*p = scan
	return nil
}

// HeaderSet holds the response headers of the first protocol that answered.
type HeaderSet struct {
	Scheme  string
	Headers map[string]string
}

// Report is the top-level output of one recon run. It is owned by the
// orchestrator; collectors return values and never write into it directly.
type Report struct {
	Target     string
	Resolution Resolution
	Whois      WhoisResult
	DNS        DNSRecords
	Ports      PortScan
	Headers    *HeaderSet // nil when both protocols failed
}

type reportResults struct {
	IPAddress    Resolution        `json:"ip_address"`
	Whois        WhoisResult       `json:"whois"`
	DNSRecords   DNSRecords        `json:"dns_records"`
	PortScan     PortScan          `json:"port_scan"`
	HTTPSHeaders map[string]string `json:"https_headers,omitempty"`
	HTTPHeaders  map[string]string `json:"http_headers,omitempty"`
}

type reportJSON struct {
	Target  string        `json:"target"`
	Results reportResults `json:"results"`
}

func (r Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Target: r.Target,
		Results: reportResults{
			IPAddress:  r.Resolution,
			Whois:      r.Whois,
			DNSRecords: r.DNS,
			PortScan:   r.Ports,
		},
	}
	if r.Headers != nil {
		switch r.Headers.Scheme {
		case "http":
			out.Results.HTTPHeaders = r.Headers.Headers
		default:
			out.Results.HTTPSHeaders = r.Headers.Headers
		}
	}
	return json.Marshal(out)
}

func (r *Report) UnmarshalJSON(data []byte) error {
	var in reportJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	report := Report{
		Target:     in.Target,
		Resolution: in.Results.IPAddress,
		Whois:      in.Results.Whois,
		DNS:        in.Results.DNSRecords,
		Ports:      in.Results.PortScan,
	}
	switch {
	case in.Results.HTTPSHeaders != nil:
		report.Headers = &HeaderSet{Scheme: "https", Headers: in.Results.HTTPSHeaders}
	case in.Results.HTTPHeaders != nil:
		report.Headers = &HeaderSet{Scheme: "http", Headers: in.Results.HTTPHeaders}
	}
	*r = report
	return nil
}

// AddressResolver maps a hostname to a network address.
type AddressResolver interface {
	Resolve(ctx context.Context, target string) (string, error)
}

// WhoisClient retrieves registration metadata for a target.
type WhoisClient interface {
	Lookup(ctx context.Context, target string) (*Registration, error)
}

// DNSCollector enumerates DNS records for a domain name.
type DNSCollector interface {
	Collect(ctx context.Context, domain string) (map[string][]string, error)
}

// PortScanner probes TCP ports on a resolved address.
type PortScanner interface {
	Scan(ctx context.Context, address string, ports []int, concurrency int, timeout time.Duration) ([]PortResult, error)
}

// HeaderFetcher retrieves HTTP response headers, preferring HTTPS.
// A nil HeaderSet with nil error means neither protocol answered.
type HeaderFetcher interface {
	Fetch(ctx context.Context, target string, timeout time.Duration) (*HeaderSet, error)
}
