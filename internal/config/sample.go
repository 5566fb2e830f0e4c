package config

// SampleConfig returns a fully commented configuration file body
func SampleConfig() string {
	return `# CheckDeck configuration
version: "1.0"

tools:
  # Analysis binary invoked against the project directory.
  cppcheck: cppcheck
  # Renders the persisted XML report to an HTML tree.
  html_report: cppcheck-htmlreport
  # Headless PDF candidates, most preferred first. The first one found
  # on the search path at startup is used.
  browsers:
    - google-chrome
    - chromium-browser
    - chromium
  # Package manager argv prefix; missing tool names are appended.
  install_command: [sudo, apt-get, install, -y]

analysis:
  # Severity filters active by default. "error" is display-only:
  # cppcheck always emits error-class diagnostics.
  severities: [error, warning]
  # Per-run limit for external processes. 0 disables the limit.
  timeout: 0

report:
  # Artifact names, created inside the selected project directory.
  xml_file: cppcheck.xml
  html_dir: html_report
  pdf_file: report.pdf

output:
  # raw prints cppcheck's own output; text/json/markdown/table render
  # the parsed findings.
  default_format: raw
  color_mode: auto
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration with only the
// settings most installs change
func MinimalSampleConfig() string {
	return `version: "1.0"

analysis:
  severities: [error, warning]

output:
  default_format: raw
`
}
