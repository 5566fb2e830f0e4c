package report

import (
	"context"
	"fmt"
	"os"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// HTMLGenerator turns a structured cppcheck run into a browsable HTML
// report via cppcheck-htmlreport, then opens it with the default
// handler.
//
// The pipeline aborts at the first failing stage with a distinct log
// message per site; already-written artifacts are left in place.
type HTMLGenerator struct {
	Analyzer *cppcheck.Analyzer
	Render   string
	Runner   toolchain.Runner
	Opener   *toolchain.Opener

	// WriteFile is a seam for tests; nil means os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error
}

// Generate runs the two-stage pipeline and returns the report
// directory. A failed default-handler launch is logged but does not
// fail the generation.
func (g *HTMLGenerator) Generate(ctx context.Context, paths Paths, log Logger) (string, error) {
	log.Appendf("Generating HTML report for %s", paths.Project)

	res, err := g.Analyzer.RunXML(ctx, paths.Project)
	if err != nil {
		log.Appendf("Error running cppcheck --xml")
		return "", err
	}

	writeFile := g.WriteFile
	if writeFile == nil {
		writeFile = os.WriteFile
	}
	if err := writeFile(paths.XML(), res.Stderr, 0o644); err != nil {
		log.Appendf("Failed to write XML report")
		return "", fmt.Errorf("failed to write XML report: %w", err)
	}

	render := g.Render
	if render == "" {
		render = "cppcheck-htmlreport"
	}
	_, err = g.Runner.Run(ctx, render,
		"--file", paths.XML(),
		"--report-dir", paths.HTMLReportDir(),
		"--source-dir", paths.Project,
		"--title", paths.Title(),
	)
	if err != nil {
		log.Appendf("Error generating HTML report")
		return "", err
	}

	log.Appendf("HTML report saved to %s", paths.HTMLReportDir())

	if g.Opener != nil {
		if err := g.Opener.Open(ctx, toolchain.FileURI(paths.Index())); err != nil {
			log.Appendf("Failed to open HTML report: %v", err)
		}
	}
	return paths.HTMLReportDir(), nil
}
