package format

import (
	"fmt"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
)

// Formatter renders a parsed findings report.
type Formatter interface {
	Format(report *cppcheck.Report) ([]byte, error)
}

// New creates a formatter for the named output format.
func New(name string) (Formatter, error) {
	switch name {
	case "text":
		return NewText(), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	case "table":
		return NewTable(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, markdown, or table)", name)
	}
}

// Colorable is implemented by formatters that emit ANSI colors.
type Colorable interface {
	SetColors(enabled bool)
}

// severityOrder fixes the display order across all formatters.
var severityOrder = []cppcheck.Severity{
	cppcheck.SeverityError,
	cppcheck.SeverityWarning,
	cppcheck.SeverityStyle,
	cppcheck.SeverityPerformance,
	cppcheck.SeverityPortability,
	cppcheck.SeverityInformation,
}
