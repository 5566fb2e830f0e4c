package config

import (
	"fmt"
	"time"

	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Tools    ToolsConfig    `yaml:"tools" json:"tools"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Report   ReportConfig   `yaml:"report" json:"report"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// ToolsConfig names the external executables the workbench drives
type ToolsConfig struct {
	Cppcheck       string   `yaml:"cppcheck" json:"cppcheck"`                 // analysis binary
	HTMLReport     string   `yaml:"html_report" json:"html_report"`           // report rendering binary
	Browsers       []string `yaml:"browsers" json:"browsers"`                 // headless PDF candidates, preferred first
	InstallCommand []string `yaml:"install_command" json:"install_command"`   // package manager argv prefix
	ProbeBrowser   string   `yaml:"probe_browser" json:"probe_browser"`       // browser name shown in the probe table
}

// AnalysisConfig configures analysis behavior
type AnalysisConfig struct {
	Severities []string      `yaml:"severities" json:"severities"` // default active filters
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`       // per-run limit; 0 means none
}

// ReportConfig names the artifacts written into the project directory
type ReportConfig struct {
	XMLFile string `yaml:"xml_file" json:"xml_file"`
	HTMLDir string `yaml:"html_dir" json:"html_dir"`
	PDFFile string `yaml:"pdf_file" json:"pdf_file"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // raw|text|json|markdown|table
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Tools: ToolsConfig{
			Cppcheck:       "cppcheck",
			HTMLReport:     "cppcheck-htmlreport",
			Browsers:       append([]string(nil), toolchain.DefaultBrowsers...),
			InstallCommand: append([]string(nil), toolchain.DefaultInstallCommand...),
			ProbeBrowser:   toolchain.DefaultBrowsers[0],
		},
		Analysis: AnalysisConfig{
			Severities: []string{"error", "warning"},
			Timeout:    0,
		},
		Report: ReportConfig{
			XMLFile: "cppcheck.xml",
			HTMLDir: "html_report",
			PDFFile: "report.pdf",
		},
		Output: OutputConfig{
			DefaultFormat: "raw",
			ColorMode:     "auto",
			Verbose:       false,
		},
	}
}

// RequiredTools lists the executables the startup probe checks.
func (c *Config) RequiredTools() []string {
	return []string{c.Tools.Cppcheck, c.Tools.HTMLReport, c.Tools.ProbeBrowser}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateTools() error {
	if c.Tools.Cppcheck == "" {
		return fmt.Errorf("tools.cppcheck must not be empty")
	}
	if c.Tools.HTMLReport == "" {
		return fmt.Errorf("tools.html_report must not be empty")
	}
	if len(c.Tools.Browsers) == 0 {
		return fmt.Errorf("tools.browsers must list at least one candidate")
	}
	if len(c.Tools.InstallCommand) == 0 {
		return fmt.Errorf("tools.install_command must not be empty")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	valid := map[string]bool{
		"error":       true,
		"warning":     true,
		"style":       true,
		"performance": true,
	}
	for _, sev := range c.Analysis.Severities {
		if !valid[sev] {
			return fmt.Errorf("invalid severity: %s (must be one of: error, warning, style, performance)", sev)
		}
	}
	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("analysis.timeout must not be negative")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.XMLFile == "" || c.Report.HTMLDir == "" || c.Report.PDFFile == "" {
		return fmt.Errorf("report artifact names must not be empty")
	}
	return nil
}

func (c *Config) validateOutput() error {
	validFormats := map[string]bool{
		"raw":      true,
		"text":     true,
		"json":     true,
		"markdown": true,
		"table":    true,
	}
	if c.Output.DefaultFormat != "" && !validFormats[c.Output.DefaultFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: raw, text, json, markdown, table)", c.Output.DefaultFormat)
	}
	validColorModes := map[string]bool{"auto": true, "always": true, "never": true}
	if c.Output.ColorMode != "" && !validColorModes[c.Output.ColorMode] {
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
	}
	return nil
}
