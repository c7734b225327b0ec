package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnverified/scout/internal/engine"
)

// WriteJSON writes the report as indented JSON to w.
func WriteJSON(w io.Writer, report *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// SaveReport writes the report artifact into dir and returns its path.
// A write failure is the one collector-adjacent error that is fatal to
// the run, so it surfaces to the caller instead of being swallowed.
func SaveReport(dir string, report *engine.Report) (string, error) {
	path := filepath.Join(dir, ArtifactName(report.Target))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	if err := WriteJSON(f, report); err != nil {
		f.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// ArtifactName derives the report filename from the target identifier.
// Path separators are replaced so the artifact stays inside dir.
func ArtifactName(target string) string {
	sanitized := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(target)
	return sanitized + "_recon.json"
}
