package output

import (
	"strings"
	"testing"
)

func TestProgress_StagesAndWarnings(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(&buf, false, false)

	p.Stage(1, 5, "Resolving target address...")
	p.Detail("verbose-only detail")
	p.Warn("Could not resolve hostname")

	out := buf.String()
	if !strings.Contains(out, "[1/5] Resolving target address...") {
		t.Errorf("missing stage header:\n%s", out)
	}
	if !strings.Contains(out, "! Could not resolve hostname") {
		t.Errorf("missing warning:\n%s", out)
	}
	if strings.Contains(out, "verbose-only detail") {
		t.Errorf("detail printed without verbose:\n%s", out)
	}
}

func TestProgress_Verbose(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(&buf, true, false)

	p.Detail("IP address: 93.184.216.34")
	if !strings.Contains(buf.String(), "IP address: 93.184.216.34") {
		t.Errorf("detail missing in verbose mode:\n%s", buf.String())
	}
}

func TestProgress_Silent(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(&buf, true, true)

	p.Stage(1, 5, "msg")
	p.Detail("msg")
	p.Warn("msg")
	p.Complete()

	if buf.Len() != 0 {
		t.Errorf("silent progress wrote output: %q", buf.String())
	}
}
