package recon

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	fallbackResolverAddr = "8.8.8.8:53"
	defaultQueryTimeout  = 5 * time.Second
)

// recordTypes is the fixed set of record types enumerated per run.
var recordTypes = []struct {
	name  string
	qtype uint16
}{
	{"A", dns.TypeA},
	{"AAAA", dns.TypeAAAA},
	{"MX", dns.TypeMX},
	{"NS", dns.TypeNS},
	{"TXT", dns.TypeTXT},
	{"SOA", dns.TypeSOA},
	{"CNAME", dns.TypeCNAME},
}

// RecordCollector implements engine.DNSCollector with one independent
// query per record type against the system resolver.
type RecordCollector struct {
	// Server is the resolver address (host:port). Empty means the first
	// nameserver from resolv.conf, falling back to 8.8.8.8:53.
	Server  string
	Timeout time.Duration
}

// Collect issues one query per record type. A type whose query errors or
// returns no answer contributes no key; that is never an overall failure.
func (c *RecordCollector) Collect(ctx context.Context, domain string) (map[string][]string, error) {
	server := c.Server
	if server == "" {
		server = systemResolver()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	client := &dns.Client{Timeout: timeout}

	records := make(map[string][]string)
	for _, rt := range recordTypes {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		values := query(ctx, client, server, domain, rt.qtype)
		if len(values) > 0 {
			records[rt.name] = values
		}
	}
	return records, nil
}

func query(ctx context.Context, client *dns.Client, server, domain string, qtype uint16) []string {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), qtype)

	in, _, err := client.ExchangeContext(ctx, m, server)
	if err != nil || in == nil {
		return nil
	}

	var values []string
	for _, ans := range in.Answer {
		// Answers for A queries can carry the CNAME chain too; keep only
		// the requested type.
		if ans.Header().Rrtype != qtype {
			continue
		}
		switch rr := ans.(type) {
		case *dns.A:
			values = append(values, rr.A.String())
		case *dns.AAAA:
			values = append(values, rr.AAAA.String())
		case *dns.MX:
			values = append(values, fmt.Sprintf("%d %s", rr.Preference, strings.TrimSuffix(rr.Mx, ".")))
		case *dns.NS:
			values = append(values, strings.TrimSuffix(rr.Ns, "."))
		case *dns.TXT:
			values = append(values, strings.Join(rr.Txt, ""))
		case *dns.SOA:
			values = append(values, fmt.Sprintf("%s %s %d %d %d %d %d",
				strings.TrimSuffix(rr.Ns, "."), strings.TrimSuffix(rr.Mbox, "."),
				rr.Serial, rr.Refresh, rr.Retry, rr.Expire, rr.Minttl))
		case *dns.CNAME:
			values = append(values, strings.TrimSuffix(rr.Target, "."))
		}
	}
	return values
}

func systemResolver() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err == nil && len(conf.Servers) > 0 {
		return net.JoinHostPort(conf.Servers[0], conf.Port)
	}
	return fallbackResolverAddr
}
