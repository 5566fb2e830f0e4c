package format

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
)

// tableFormatter renders findings in a terminal table, width-adapted
// and severity-colored.
type tableFormatter struct {
	// EnableColors toggles ANSI color output for severity cells.
	EnableColors bool
	// Width overrides terminal width detection when non-zero.
	Width int
}

// NewTable creates a table formatter with color enabled.
func NewTable() Formatter {
	return &tableFormatter{EnableColors: true}
}

func (f *tableFormatter) Format(report *cppcheck.Report) ([]byte, error) {
	var buf bytes.Buffer

	tw := table.NewWriter()
	tw.SetOutputMirror(&buf)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false

	tw.AppendHeader(table.Row{"Severity", "Location", "Id", "Message"})

	for i := range report.Findings {
		finding := &report.Findings[i]
		location := ""
		if loc := finding.Primary(); loc != nil {
			location = fmt.Sprintf("%s:%d", loc.File, loc.Line)
		}
		tw.AppendRow(table.Row{f.severityCell(finding.Severity), location, finding.ID, finding.Msg})
	}

	counts := report.CountBySeverity()
	total := 0
	for _, n := range counts {
		total += n
	}
	tw.AppendFooter(table.Row{"", "", "total", total})

	if width := f.terminalWidth(); width > 0 {
		tw.SetAllowedRowLength(width)
	}

	tw.Render()
	return buf.Bytes(), nil
}

// SetColors implements Colorable.
func (f *tableFormatter) SetColors(enabled bool) {
	f.EnableColors = enabled
}

func (f *tableFormatter) severityCell(sev cppcheck.Severity) string {
	if !f.EnableColors {
		return string(sev)
	}
	switch sev {
	case cppcheck.SeverityError:
		return text.FgRed.Sprint(sev)
	case cppcheck.SeverityWarning:
		return text.FgYellow.Sprint(sev)
	case cppcheck.SeverityStyle, cppcheck.SeverityPerformance:
		return text.FgCyan.Sprint(sev)
	default:
		return string(sev)
	}
}

func (f *tableFormatter) terminalWidth() int {
	if f.Width > 0 {
		return f.Width
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}
