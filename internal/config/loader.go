package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.checkdeck.yaml",               // Project-specific config (highest priority)
	"~/.config/checkdeck/config.yaml", // User config
	"/etc/checkdeck/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.checkdeck.yaml
// 4. ~/.config/checkdeck/config.yaml
// 5. /etc/checkdeck/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths lowest priority first so later
		// files override earlier ones.
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies CHECKDECK_* environment variable overrides
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"CHECKDECK_CPPCHECK":    func(v string) error { config.Tools.Cppcheck = v; return nil },
		"CHECKDECK_HTML_REPORT": func(v string) error { config.Tools.HTMLReport = v; return nil },
		"CHECKDECK_BROWSERS": func(v string) error {
			config.Tools.Browsers = splitList(v)
			return nil
		},
		"CHECKDECK_INSTALL_COMMAND": func(v string) error {
			config.Tools.InstallCommand = strings.Fields(v)
			return nil
		},
		"CHECKDECK_SEVERITIES": func(v string) error {
			config.Analysis.Severities = splitList(v)
			return nil
		},
		"CHECKDECK_TIMEOUT":       func(v string) error { return parseDuration(v, &config.Analysis.Timeout) },
		"CHECKDECK_OUTPUT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"CHECKDECK_COLOR_MODE":    func(v string) error { config.Output.ColorMode = v; return nil },
		"CHECKDECK_VERBOSE":       func(v string) error { return parseBool(v, &config.Output.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

// mergeConfigs merges the non-zero fields of src into dst
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.Tools.Cppcheck != "" {
		dst.Tools.Cppcheck = src.Tools.Cppcheck
	}
	if src.Tools.HTMLReport != "" {
		dst.Tools.HTMLReport = src.Tools.HTMLReport
	}
	if len(src.Tools.Browsers) > 0 {
		dst.Tools.Browsers = src.Tools.Browsers
	}
	if len(src.Tools.InstallCommand) > 0 {
		dst.Tools.InstallCommand = src.Tools.InstallCommand
	}
	if src.Tools.ProbeBrowser != "" {
		dst.Tools.ProbeBrowser = src.Tools.ProbeBrowser
	}
	if len(src.Analysis.Severities) > 0 {
		dst.Analysis.Severities = src.Analysis.Severities
	}
	if src.Analysis.Timeout != 0 {
		dst.Analysis.Timeout = src.Analysis.Timeout
	}
	if src.Report.XMLFile != "" {
		dst.Report.XMLFile = src.Report.XMLFile
	}
	if src.Report.HTMLDir != "" {
		dst.Report.HTMLDir = src.Report.HTMLDir
	}
	if src.Report.PDFFile != "" {
		dst.Report.PDFFile = src.Report.PDFFile
	}
	if src.Output.DefaultFormat != "" {
		dst.Output.DefaultFormat = src.Output.DefaultFormat
	}
	if src.Output.ColorMode != "" {
		dst.Output.ColorMode = src.Output.ColorMode
	}
	if src.Output.Verbose {
		dst.Output.Verbose = true
	}
}

// GetConfigPaths returns the search paths with the home directory expanded
func GetConfigPaths() []string {
	paths := make([]string, len(ConfigPaths))
	for i, path := range ConfigPaths {
		paths[i] = expandPath(path)
	}
	return paths
}

// FindConfigFile returns the first existing config file in priority order
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expanded := expandPath(path)
		if fileExists(expanded) {
			return expanded, true
		}
	}
	return "", false
}

func validateConfigPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null byte")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have a .yaml or .yml extension")
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}
