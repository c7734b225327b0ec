package output

import (
	"strings"
	"testing"

	"github.com/vulnverified/scout/internal/engine"
)

func TestWritePorts_Skipped(t *testing.T) {
	var buf strings.Builder
	WritePorts(&buf, engine.PortScan{Skipped: true}, true)

	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("output = %q, want skip notice", buf.String())
	}
}

func TestWritePorts_NoneOpen(t *testing.T) {
	var buf strings.Builder
	WritePorts(&buf, engine.PortScan{Results: []engine.PortResult{
		{Port: 22, Open: false},
	}}, true)

	if !strings.Contains(buf.String(), "No open ports") {
		t.Errorf("output = %q, want none-open notice", buf.String())
	}
}

func TestWritePorts_PlainTable(t *testing.T) {
	var buf strings.Builder
	WritePorts(&buf, engine.PortScan{Results: []engine.PortResult{
		{Port: 22, Open: false},
		{Port: 80, Open: true, Service: "http"},
		{Port: 443, Open: true, Service: "https"},
	}}, true)

	out := buf.String()
	for _, want := range []string{"Port", "Service", "80", "http", "443", "https"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "22") {
		t.Errorf("closed port rendered:\n%s", out)
	}
}
