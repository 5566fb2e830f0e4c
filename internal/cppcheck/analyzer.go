package cppcheck

import (
	"context"
	"errors"

	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// ErrNoProject is returned when an analysis is requested before a
// project directory has been selected.
var ErrNoProject = errors.New("no project directory selected")

// Analyzer invokes the cppcheck binary against a project directory.
type Analyzer struct {
	binary string
	runner toolchain.Runner
}

// NewAnalyzer creates an analyzer. binary defaults to "cppcheck" when
// empty.
func NewAnalyzer(binary string, runner toolchain.Runner) *Analyzer {
	if binary == "" {
		binary = "cppcheck"
	}
	return &Analyzer{binary: binary, runner: runner}
}

// Binary returns the configured cppcheck executable name.
func (a *Analyzer) Binary() string {
	return a.binary
}

// Run performs a plain analysis of the project with the given filters.
// A finding-laden exit status is still a successful run; only a launch
// failure is an error.
func (a *Analyzer) Run(ctx context.Context, path string, f Filters) (*toolchain.Result, error) {
	if path == "" {
		return nil, ErrNoProject
	}
	return a.runner.Run(ctx, a.binary, Args(f, path)...)
}

// RunXML performs a structured-output run. By cppcheck convention the
// XML document arrives on stderr, not stdout.
func (a *Analyzer) RunXML(ctx context.Context, path string) (*toolchain.Result, error) {
	if path == "" {
		return nil, ErrNoProject
	}
	return a.runner.Run(ctx, a.binary, XMLArgs(path)...)
}

// RunXMLFiltered performs a structured-output run with the optional
// severities from f enabled, so the parsed findings honor the caller's
// filter selection.
func (a *Analyzer) RunXMLFiltered(ctx context.Context, path string, f Filters) (*toolchain.Result, error) {
	if path == "" {
		return nil, ErrNoProject
	}
	return a.runner.Run(ctx, a.binary, XMLArgsFiltered(f, path)...)
}
