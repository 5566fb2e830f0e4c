package report

import "path/filepath"

// Paths computes report artifact locations. All artifacts live inside
// the selected project directory.
type Paths struct {
	Project string
	XMLName string
	HTMLDir string
	PDFName string
}

// NewPaths creates Paths with the default artifact names.
func NewPaths(project string) Paths {
	return Paths{
		Project: project,
		XMLName: "cppcheck.xml",
		HTMLDir: "html_report",
		PDFName: "report.pdf",
	}
}

// XML is the persisted structured-output file.
func (p Paths) XML() string {
	return filepath.Join(p.Project, p.XMLName)
}

// HTMLReportDir is the rendered report tree.
func (p Paths) HTMLReportDir() string {
	return filepath.Join(p.Project, p.HTMLDir)
}

// Index is the rendered report's entry document.
func (p Paths) Index() string {
	return filepath.Join(p.HTMLReportDir(), "index.html")
}

// PDF is the rasterized report file.
func (p Paths) PDF() string {
	return filepath.Join(p.Project, p.PDFName)
}

// Title derives the report title from the project's base directory
// name.
func (p Paths) Title() string {
	name := filepath.Base(p.Project)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "project"
	}
	return "Cppcheck report - " + name
}
