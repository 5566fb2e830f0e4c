package format

import (
	"encoding/json"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *cppcheck.Report) ([]byte, error) {
	output := &jsonOutput{
		CppcheckVersion: report.Cppcheck.Version,
		Summary:         make(map[string]int),
	}
	for sev, n := range report.CountBySeverity() {
		output.Summary[string(sev)] = n
	}

	for i := range report.Findings {
		finding := &report.Findings[i]
		out := &findingOutput{
			ID:       finding.ID,
			Severity: string(finding.Severity),
			Message:  finding.Msg,
			CWE:      finding.CWE,
		}
		if loc := finding.Primary(); loc != nil {
			out.File = loc.File
			out.Line = loc.Line
			out.Column = loc.Column
		}
		output.Findings = append(output.Findings, out)
	}

	return json.MarshalIndent(output, "", "  ")
}

type jsonOutput struct {
	CppcheckVersion string           `json:"cppcheck_version,omitempty"`
	Summary         map[string]int   `json:"summary"`
	Findings        []*findingOutput `json:"findings"`
}

type findingOutput struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	CWE      string `json:"cwe,omitempty"`
}
