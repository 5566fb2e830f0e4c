package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// ErrNoBrowser is returned when no headless-capable browser was
// discovered at startup.
var ErrNoBrowser = errors.New("no PDF utility available")

// PDFGenerator rasterizes the HTML report to a PDF with a headless
// browser. The browser's exit status alone is not trusted: the output
// file's existence is re-checked before the report is opened.
type PDFGenerator struct {
	Browser string
	Runner  toolchain.Runner
	Opener  *toolchain.Opener

	// Stat is a seam for tests; nil means os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// Generate prints the report to PDF and returns the output path. The
// three failure modes each produce a distinct log message: no browser
// discovered, subprocess failure, and a normal exit that produced no
// file.
func (g *PDFGenerator) Generate(ctx context.Context, paths Paths, log Logger) (string, error) {
	log.Appendf("Generating PDF report for %s", paths.Project)

	if g.Browser == "" {
		log.Appendf("No PDF utility available")
		return "", ErrNoBrowser
	}

	pdfFile := paths.PDF()
	_, err := g.Runner.Run(ctx, g.Browser,
		"--headless",
		"--disable-gpu",
		"--print-to-pdf="+pdfFile,
		toolchain.FileURI(paths.Index()),
	)
	if err != nil {
		log.Appendf("Error generating PDF report")
		return "", err
	}

	stat := g.Stat
	if stat == nil {
		stat = os.Stat
	}
	if _, err := stat(pdfFile); err != nil {
		log.Appendf("PDF report was not generated")
		return "", fmt.Errorf("PDF report was not generated: %w", err)
	}

	log.Appendf("PDF report saved to %s", pdfFile)

	if g.Opener != nil {
		if err := g.Opener.Open(ctx, toolchain.FileURI(pdfFile)); err != nil {
			log.Appendf("Failed to open PDF report: %v", err)
		}
	}
	return pdfFile, nil
}
