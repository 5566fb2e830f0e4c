package format

import (
	"fmt"
	"strings"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
)

// textFormatter renders findings one per line, grep-friendly
type textFormatter struct{}

// NewText creates a plain text formatter
func NewText() Formatter {
	return &textFormatter{}
}

func (f *textFormatter) Format(report *cppcheck.Report) ([]byte, error) {
	var b strings.Builder

	for i := range report.Findings {
		finding := &report.Findings[i]
		if loc := finding.Primary(); loc != nil {
			fmt.Fprintf(&b, "%s:%d:%d: %s: %s [%s]\n",
				loc.File, loc.Line, loc.Column, finding.Severity, finding.Msg, finding.ID)
		} else {
			fmt.Fprintf(&b, "%s: %s [%s]\n", finding.Severity, finding.Msg, finding.ID)
		}
	}

	counts := report.CountBySeverity()
	var parts []string
	for _, sev := range severityOrder {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	if len(parts) == 0 {
		b.WriteString("No findings\n")
	} else {
		fmt.Fprintf(&b, "Findings: %s\n", strings.Join(parts, ", "))
	}

	return []byte(b.String()), nil
}
