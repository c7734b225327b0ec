package recon

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startDNSServer runs a local UDP DNS server answering for example.test.
func startDNSServer(t *testing.T) string {
	t.Helper()

	mux := dns.NewServeMux()
	mux.HandleFunc("example.test.", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)

		var rrs []string
		switch req.Question[0].Qtype {
		case dns.TypeA:
			rrs = []string{"example.test. 60 IN A 192.0.2.10", "example.test. 60 IN A 192.0.2.11"}
		case dns.TypeMX:
			rrs = []string{"example.test. 60 IN MX 10 mail.example.test."}
		case dns.TypeTXT:
			rrs = []string{`example.test. 60 IN TXT "v=spf1 -all"`}
		case dns.TypeSOA:
			rrs = []string{"example.test. 60 IN SOA ns1.example.test. hostmaster.example.test. 2026082501 7200 3600 1209600 3600"}
		}
		for _, s := range rrs {
			rr, err := dns.NewRR(s)
			if err != nil {
				t.Errorf("bad test RR %q: %v", s, err)
				continue
			}
			m.Answer = append(m.Answer, rr)
		}
		w.WriteMsg(m)
	})

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	srv := &dns.Server{PacketConn: pc, Handler: mux}
	go srv.ActivateAndServe()
	t.Cleanup(func() { srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestRecordCollector_Collect(t *testing.T) {
	addr := startDNSServer(t)

	c := &RecordCollector{Server: addr, Timeout: 2 * time.Second}
	records, err := c.Collect(context.Background(), "example.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := records["A"]; len(got) != 2 || got[0] != "192.0.2.10" {
		t.Errorf("A = %v", got)
	}
	if got := records["MX"]; len(got) != 1 || got[0] != "10 mail.example.test" {
		t.Errorf("MX = %v", got)
	}
	if got := records["TXT"]; len(got) != 1 || got[0] != "v=spf1 -all" {
		t.Errorf("TXT = %v", got)
	}
	if got := records["SOA"]; len(got) != 1 ||
		got[0] != "ns1.example.test hostmaster.example.test 2026082501 7200 3600 1209600 3600" {
		t.Errorf("SOA = %v", got)
	}

	// Types with empty answers contribute no key.
	for _, absent := range []string{"AAAA", "NS", "CNAME"} {
		if _, ok := records[absent]; ok {
			t.Errorf("%s present despite empty answer", absent)
		}
	}
}

func TestRecordCollector_UnreachableResolver(t *testing.T) {
	// Reserved address, nothing listening; every query times out.
	c := &RecordCollector{Server: "192.0.2.1:53", Timeout: 200 * time.Millisecond}
	records, err := c.Collect(context.Background(), "example.test")
	if err != nil {
		t.Fatalf("per-type failures must not be an overall error, got: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want empty map", records)
	}
}

func TestRecordCollector_CancelledContext(t *testing.T) {
	addr := startDNSServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &RecordCollector{Server: addr, Timeout: time.Second}
	if _, err := c.Collect(ctx, "example.test"); err == nil {
		t.Fatal("expected context error")
	}
}
