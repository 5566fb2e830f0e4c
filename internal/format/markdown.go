package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *cppcheck.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Cppcheck Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	if report.Cppcheck.Version != "" {
		fmt.Fprintf(&b, "cppcheck version: %s\n\n", report.Cppcheck.Version)
	}

	f.writeSummaryTable(&b, report)
	f.writeFindingSections(&b, report)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *cppcheck.Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Findings |\n")
	b.WriteString("|----------|----------|\n")

	counts := report.CountBySeverity()
	total := 0
	for _, sev := range severityOrder {
		if n := counts[sev]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", sev, n)
			total += n
		}
	}
	fmt.Fprintf(b, "| **total** | **%d** |\n\n", total)
}

func (f *markdownFormatter) writeFindingSections(b *strings.Builder, report *cppcheck.Report) {
	for _, sev := range severityOrder {
		var section []*cppcheck.Finding
		for i := range report.Findings {
			if report.Findings[i].Severity == sev {
				section = append(section, &report.Findings[i])
			}
		}
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(b, "## %s\n\n", capitalize(string(sev)))
		for _, finding := range section {
			if loc := finding.Primary(); loc != nil {
				fmt.Fprintf(b, "- `%s:%d` %s (%s)\n", loc.File, loc.Line, finding.Msg, finding.ID)
			} else {
				fmt.Fprintf(b, "- %s (%s)\n", finding.Msg, finding.ID)
			}
		}
		b.WriteString("\n")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
