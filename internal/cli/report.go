package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkutlay/checkdeck/internal/config"
	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/report"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

var (
	reportNoOpen  bool
	reportBrowser string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate HTML or PDF reports for a project",
		Long: `Generate reports for a project directory.

"report html" runs cppcheck in XML mode, renders the findings with
cppcheck-htmlreport, and opens the result. "report pdf" additionally
prints the rendered report to PDF with a headless browser.

Artifacts are written inside the project directory.`,
	}

	cmd.PersistentFlags().BoolVar(&reportNoOpen, "no-open", false, "do not open the generated report")

	html := &cobra.Command{
		Use:   "html <directory>",
		Short: "Generate an HTML report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportHTML,
	}

	pdf := &cobra.Command{
		Use:   "pdf <directory>",
		Short: "Generate a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportPDF,
	}
	pdf.Flags().StringVar(&reportBrowser, "browser", "", "headless browser binary (default: first discovered)")

	cmd.AddCommand(html)
	cmd.AddCommand(pdf)
	return cmd
}

func runReportHTML(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	paths, err := resolveReportPaths(cfg, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg.Analysis.Timeout)
	defer cancel()

	runner := toolchain.ExecRunner{}
	gen := &report.HTMLGenerator{
		Analyzer: cppcheck.NewAnalyzer(cfg.Tools.Cppcheck, runner),
		Render:   cfg.Tools.HTMLReport,
		Runner:   runner,
		Opener:   reportOpener(runner),
	}

	_, err = gen.Generate(ctx, paths, &writerLogger{w: cmd.OutOrStdout()})
	return err
}

func runReportPDF(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	paths, err := resolveReportPaths(cfg, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg.Analysis.Timeout)
	defer cancel()

	runner := toolchain.ExecRunner{}
	log := &writerLogger{w: cmd.OutOrStdout()}

	// The PDF is printed from the rendered HTML report, so that
	// pipeline runs first.
	htmlGen := &report.HTMLGenerator{
		Analyzer: cppcheck.NewAnalyzer(cfg.Tools.Cppcheck, runner),
		Render:   cfg.Tools.HTMLReport,
		Runner:   runner,
	}
	if _, err := htmlGen.Generate(ctx, paths, log); err != nil {
		return err
	}

	browser := reportBrowser
	if browser == "" {
		browser, _ = toolchain.FindBrowser(cfg.Tools.Browsers, nil)
	}

	pdfGen := &report.PDFGenerator{
		Browser: browser,
		Runner:  runner,
		Opener:  reportOpener(runner),
	}
	_, err = pdfGen.Generate(ctx, paths, log)
	return err
}

func resolveReportPaths(cfg *config.Config, project string) (report.Paths, error) {
	abs, err := filepath.Abs(project)
	if err != nil {
		return report.Paths{}, fmt.Errorf("cannot resolve project path: %w", err)
	}
	return report.Paths{
		Project: abs,
		XMLName: cfg.Report.XMLFile,
		HTMLDir: cfg.Report.HTMLDir,
		PDFName: cfg.Report.PDFFile,
	}, nil
}

func reportOpener(runner toolchain.Runner) *toolchain.Opener {
	if reportNoOpen {
		return nil
	}
	return toolchain.NewOpener(runner)
}

// writerLogger adapts an io.Writer to the report log interface so the
// pipeline messages stream to the terminal as they happen.
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Append(text string) {
	fmt.Fprint(l.w, text)
}

func (l *writerLogger) Appendf(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}
