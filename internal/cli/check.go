package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/format"
	"github.com/mkutlay/checkdeck/internal/logger"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

var (
	checkEnable     string
	checkTimeout    time.Duration
	checkOutputFile string
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <directory>",
		Short: "Run cppcheck over a project directory",
		Long: `Run cppcheck over a project directory and print the results.

The raw format prints cppcheck's own output verbatim. The other
formats run cppcheck in XML mode, parse the findings, and render them.

Examples:
  checkdeck check ~/src/myproject
  checkdeck check --enable warning,style ~/src/myproject
  checkdeck check -o table ~/src/myproject
  checkdeck check -o json ~/src/myproject > findings.json`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&checkEnable, "enable", "", "comma-separated severity filters (error, warning, style, performance)")
	cmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "per-run limit (0 disables)")
	cmd.Flags().StringVar(&checkOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := logger.NewWithCallback("check", isVerbose)

	project, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve project path: %w", err)
	}

	filters, err := resolveFilters(cmd, cfg.Analysis.Severities)
	if err != nil {
		return err
	}

	timeout := checkTimeout
	if !cmd.Flag("timeout").Changed {
		timeout = cfg.Analysis.Timeout
	}
	ctx, cancel := commandContext(timeout)
	defer cancel()

	analyzer := cppcheck.NewAnalyzer(cfg.Tools.Cppcheck, toolchain.ExecRunner{})
	outputFormat := getOutputFormat()

	log.Info("analyzing %s with %s, format %s", project, analyzer.Binary(), outputFormat)

	if outputFormat == "" || outputFormat == "raw" {
		res, err := analyzer.Run(ctx, project, filters)
		if err != nil {
			return err
		}
		return writeCheckOutput(cmd, combinedOutput(res))
	}

	res, err := analyzer.RunXMLFiltered(ctx, project, filters)
	if err != nil {
		return err
	}
	// The structured document arrives on the diagnostic channel.
	report, err := cppcheck.ParseReport(res.Stderr)
	if err != nil {
		return err
	}

	formatter, err := format.New(outputFormat)
	if err != nil {
		return err
	}
	if c, ok := formatter.(format.Colorable); ok {
		c.SetColors(colorEnabled(cfg.Output.ColorMode))
	}
	out, err := formatter.Format(report)
	if err != nil {
		return err
	}
	return writeCheckOutput(cmd, out)
}

// resolveFilters builds severity filters from the --enable flag,
// falling back to the configured defaults.
func resolveFilters(cmd *cobra.Command, defaults []string) (cppcheck.Filters, error) {
	names := defaults
	if cmd.Flag("enable") != nil && cmd.Flag("enable").Changed {
		names = splitSeverities(checkEnable)
	}
	filters, unknown := cppcheck.ParseFilters(names)
	if len(unknown) > 0 {
		return filters, fmt.Errorf("unknown severity: %s (use error, warning, style, performance)", strings.Join(unknown, ", "))
	}
	return filters, nil
}

func splitSeverities(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// combinedOutput concatenates the captured streams, stdout first,
// without writing into either stream's backing array.
func combinedOutput(res *toolchain.Result) []byte {
	return bytes.Join([][]byte{res.Stdout, res.Stderr}, nil)
}

func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func writeCheckOutput(cmd *cobra.Command, data []byte) error {
	if checkOutputFile != "" {
		if err := os.WriteFile(checkOutputFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to %s\n", checkOutputFile)
		}
		return nil
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
