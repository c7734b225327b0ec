package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vulnverified/scout/internal/engine"
)

// WritePorts renders the port scan outcome as a styled terminal table.
func WritePorts(w io.Writer, scan engine.PortScan, noColor bool) {
	if scan.Skipped {
		fmt.Fprintln(w, "\nPort scan skipped: target did not resolve.")
		return
	}

	open := scan.OpenPorts()
	if len(open) == 0 {
		fmt.Fprintln(w, "\nNo open ports found among commonly scanned ports.")
		return
	}

	var rows [][]string
	for _, r := range open {
		rows = append(rows, []string{strconv.Itoa(r.Port), r.Service})
	}

	fmt.Fprintln(w)

	headers := []string{"Port", "Service"}
	if noColor {
		writeSimpleTable(w, headers, rows)
		return
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func writeSimpleTable(w io.Writer, headers []string, rows [][]string) {
	// Calculate column widths.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header.
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	// Separator.
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	// Rows.
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}
