package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkutlay/checkdeck/internal/emoji"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

var doctorInstall bool

func newDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the required tools are installed",
		Long: `Check that cppcheck, cppcheck-htmlreport, and a headless browser are
reachable on the search path, and optionally install the missing ones
through the package manager.

Exits non-zero when tools are missing and --install was not given.`,
		RunE: runDoctor,
	}

	cmd.Flags().BoolVar(&doctorInstall, "install", false, "install missing tools via the package manager")

	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	tools := cfg.RequiredTools()
	avail := toolchain.Probe(tools, nil)
	missing := toolchain.Missing(tools, avail)
	browser, browserFound := toolchain.FindBrowser(cfg.Tools.Browsers, nil)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		t.SetAllowedRowLength(width)
	}

	t.AppendHeader(table.Row{"Tool", "Status"})
	for _, tool := range tools {
		status := emoji.GetEmoji("success") + " found"
		if !avail[tool] {
			status = emoji.GetEmoji("missing") + " missing"
		}
		t.AppendRow(table.Row{tool, status})
	}

	browserStatus := emoji.GetEmoji("missing") + " none of " + fmt.Sprint(cfg.Tools.Browsers)
	if browserFound {
		browserStatus = emoji.GetEmoji("success") + " " + browser
	}
	t.AppendRow(table.Row{"PDF browser", browserStatus})
	t.Render()

	if len(missing) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s All required tools are available\n", emoji.GetEmoji("success"))
		return nil
	}

	if !doctorInstall {
		return fmt.Errorf("%d tool(s) missing; re-run with --install to install them", len(missing))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nInstalling missing utilities...")

	ctx, cancel := commandContext(0)
	defer cancel()

	installer := toolchain.NewInstaller(cfg.Tools.InstallCommand, toolchain.ExecRunner{})
	res, err := installer.Install(ctx, missing)
	if err != nil {
		return fmt.Errorf("error running package manager: %w", err)
	}
	cmd.OutOrStdout().Write(res.Stdout)
	cmd.OutOrStdout().Write(res.Stderr)

	// Re-probe so the summary reflects the install result.
	avail = toolchain.Probe(tools, nil)
	if still := toolchain.Missing(tools, avail); len(still) > 0 {
		return fmt.Errorf("still missing after install: %v", still)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s All required tools are available\n", emoji.GetEmoji("success"))
	return nil
}
