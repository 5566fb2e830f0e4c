package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkutlay/checkdeck/internal/config"
	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/report"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// Message types for the workbench
type tickMsg time.Time

type analysisDoneMsg struct {
	res *toolchain.Result
	err error
}

type pipelineDoneMsg struct {
	chunks []string
	err    error
}

type installDoneMsg struct {
	chunks []string
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runContext applies the configured per-run limit; zero means no
// limit.
func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// runAnalysisCmd creates a command that performs a plain analysis run.
func runAnalysisCmd(analyzer *cppcheck.Analyzer, project string, filters cppcheck.Filters, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := runContext(timeout)
		defer cancel()

		res, err := analyzer.Run(ctx, project, filters)
		return analysisDoneMsg{res: res, err: err}
	}
}

// generateHTMLCmd creates a command that runs the HTML pipeline and
// carries its activity log back to Update.
func generateHTMLCmd(deps Deps, cfg *config.Config, project string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := runContext(cfg.Analysis.Timeout)
		defer cancel()

		gen := &report.HTMLGenerator{
			Analyzer: deps.Analyzer,
			Render:   cfg.Tools.HTMLReport,
			Runner:   deps.Runner,
			Opener:   deps.Opener,
		}

		var buf report.Buffer
		_, err := gen.Generate(ctx, reportPaths(cfg, project), &buf)
		return pipelineDoneMsg{chunks: buf.Chunks(), err: err}
	}
}

// generatePDFCmd creates a command that rasterizes the HTML report.
func generatePDFCmd(deps Deps, cfg *config.Config, project string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := runContext(cfg.Analysis.Timeout)
		defer cancel()

		gen := &report.PDFGenerator{
			Browser: deps.Browser,
			Runner:  deps.Runner,
			Opener:  deps.Opener,
		}

		var buf report.Buffer
		_, err := gen.Generate(ctx, reportPaths(cfg, project), &buf)
		return pipelineDoneMsg{chunks: buf.Chunks(), err: err}
	}
}

// installCmd creates a command that installs the missing tools.
func installCmd(installer *toolchain.Installer, missing []string) tea.Cmd {
	return func() tea.Msg {
		res, err := installer.Install(context.Background(), missing)
		if err != nil {
			return installDoneMsg{chunks: []string{"Error running package manager: " + err.Error() + "\n"}}
		}
		return installDoneMsg{chunks: []string{string(res.Stdout), string(res.Stderr)}}
	}
}

func reportPaths(cfg *config.Config, project string) report.Paths {
	return report.Paths{
		Project: project,
		XMLName: cfg.Report.XMLFile,
		HTMLDir: cfg.Report.HTMLDir,
		PDFName: cfg.Report.PDFFile,
	}
}
