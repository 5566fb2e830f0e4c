package cppcheck

import "strings"

// Severity identifies a cppcheck diagnostic class.
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityStyle       Severity = "style"
	SeverityPerformance Severity = "performance"
	SeverityPortability Severity = "portability"
	SeverityInformation Severity = "information"
)

// Filters holds the user-selectable severity toggles.
//
// Error is display-only: cppcheck emits error-class diagnostics
// unconditionally, so the toggle never contributes to --enable.
type Filters struct {
	Error       bool
	Warning     bool
	Style       bool
	Performance bool
}

// DefaultFilters mirrors the workbench defaults: error and warning on,
// style and performance off.
func DefaultFilters() Filters {
	return Filters{Error: true, Warning: true}
}

// EnableList returns the active --enable members in stable order:
// warning, style, performance.
func (f Filters) EnableList() []string {
	var list []string
	if f.Warning {
		list = append(list, "warning")
	}
	if f.Style {
		list = append(list, "style")
	}
	if f.Performance {
		list = append(list, "performance")
	}
	return list
}

// Args builds the argument vector for a plain analysis run. The
// --enable argument is omitted entirely when no optional severity is
// active.
func Args(f Filters, path string) []string {
	var args []string
	if list := f.EnableList(); len(list) > 0 {
		args = append(args, "--enable="+strings.Join(list, ","))
	}
	return append(args, path)
}

// XMLArgs builds the argument vector for a structured-output run.
// The XML schema version is fixed at 2.
func XMLArgs(path string) []string {
	return []string{"--xml", "--xml-version=2", path}
}

// XMLArgsFiltered builds the argument vector for a structured-output
// run with the optional severities from f enabled. Without the enable
// argument cppcheck emits only error-class findings in XML mode.
func XMLArgsFiltered(f Filters, path string) []string {
	var args []string
	if list := f.EnableList(); len(list) > 0 {
		args = append(args, "--enable="+strings.Join(list, ","))
	}
	return append(args, XMLArgs(path)...)
}

// ParseFilters builds Filters from severity names, e.g. the value of a
// --enable flag. Unknown names are reported back to the caller.
func ParseFilters(names []string) (Filters, []string) {
	var f Filters
	var unknown []string
	for _, name := range names {
		switch Severity(strings.ToLower(strings.TrimSpace(name))) {
		case SeverityError:
			f.Error = true
		case SeverityWarning:
			f.Warning = true
		case SeverityStyle:
			f.Style = true
		case SeverityPerformance:
			f.Performance = true
		default:
			unknown = append(unknown, name)
		}
	}
	return f, unknown
}
