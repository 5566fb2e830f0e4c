package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mkutlay/checkdeck/internal/config"
	"github.com/mkutlay/checkdeck/internal/emoji"
	"github.com/mkutlay/checkdeck/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalCfg *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "checkdeck",
		Short: "Terminal workbench for cppcheck",
		Long: `CheckDeck is a terminal front-end for cppcheck. It runs the analyzer
over a project directory, captures its output, and drives
cppcheck-htmlreport and a headless browser to produce HTML and PDF
reports.

Run it without arguments for the interactive workbench, or use the
subcommands for scripted one-shot runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if cfg.Output.Verbose {
				verbose = true
			}
			globalCfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(GetGlobalConfig())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (raw, text, json, markdown, table)")

	// Add subcommands
	rootCmd.AddCommand(newUICommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newDoctorCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("CheckDeck %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, falling back to
// defaults when PersistentPreRunE has not run (tests).
func GetGlobalConfig() *config.Config {
	if globalCfg == nil {
		return config.DefaultConfig()
	}
	return globalCfg
}

// Global helpers
func isVerbose() bool {
	return verbose
}

// getOutputFormat resolves the output format: explicit flag first,
// then the configured default.
func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// colorEnabled resolves color output from the --no-color flag and the
// configured color mode.
func colorEnabled(mode string) bool {
	if noColor {
		return false
	}
	return mode != "never"
}
