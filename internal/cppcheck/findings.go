package cppcheck

import (
	"encoding/xml"
	"fmt"
)

// Report is the parsed form of cppcheck's XML version 2 output.
type Report struct {
	XMLName  xml.Name  `xml:"results"`
	Version  string    `xml:"version,attr"`
	Cppcheck Tool      `xml:"cppcheck"`
	Findings []Finding `xml:"errors>error"`
}

// Tool records the cppcheck version that produced the report.
type Tool struct {
	Version string `xml:"version,attr"`
}

// Finding is a single diagnostic.
type Finding struct {
	ID        string     `xml:"id,attr"`
	Severity  Severity   `xml:"severity,attr"`
	Msg       string     `xml:"msg,attr"`
	Verbose   string     `xml:"verbose,attr"`
	CWE       string     `xml:"cwe,attr"`
	Locations []Location `xml:"location"`
}

// Location points at a source position. cppcheck lists the primary
// location first, followed by any related positions.
type Location struct {
	File   string `xml:"file,attr"`
	Line   int    `xml:"line,attr"`
	Column int    `xml:"column,attr"`
}

// Primary returns the finding's first location, or nil for findings
// without one (e.g. whole-project informational messages).
func (f *Finding) Primary() *Location {
	if len(f.Locations) == 0 {
		return nil
	}
	return &f.Locations[0]
}

// ParseReport decodes an XML version 2 document.
func ParseReport(data []byte) (*Report, error) {
	var report Report
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse cppcheck XML: %w", err)
	}
	if report.Version != "" && report.Version != "2" {
		return nil, fmt.Errorf("unsupported cppcheck XML version: %s", report.Version)
	}
	return &report, nil
}

// CountBySeverity tallies findings per severity class.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for i := range r.Findings {
		counts[r.Findings[i].Severity]++
	}
	return counts
}
