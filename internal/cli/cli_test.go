package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mkutlay/checkdeck/internal/config"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

func TestSplitSeverities(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"error,warning", []string{"error", "warning"}},
		{" style , performance ", []string{"style", "performance"}},
		{"error,,warning,", []string{"error", "warning"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitSeverities(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitSeverities(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitSeverities(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestResolveFiltersFromFlag(t *testing.T) {
	cmd := newCheckCommand()
	if err := cmd.Flags().Set("enable", "warning,style"); err != nil {
		t.Fatal(err)
	}

	filters, err := resolveFilters(cmd, []string{"error"})
	if err != nil {
		t.Fatal(err)
	}
	if !filters.Warning || !filters.Style {
		t.Errorf("filters = %+v, want warning and style enabled", filters)
	}
	if filters.Performance {
		t.Errorf("performance should stay off, filters = %+v", filters)
	}
}

func TestResolveFiltersDefaultsWhenFlagUnset(t *testing.T) {
	cmd := newCheckCommand()

	filters, err := resolveFilters(cmd, []string{"error", "performance"})
	if err != nil {
		t.Fatal(err)
	}
	if !filters.Error || !filters.Performance {
		t.Errorf("filters = %+v, want configured defaults", filters)
	}
}

func TestResolveFiltersRejectsUnknown(t *testing.T) {
	cmd := newCheckCommand()
	if err := cmd.Flags().Set("enable", "warning,bogus"); err != nil {
		t.Fatal(err)
	}

	_, err := resolveFilters(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("err = %v, want unknown severity naming bogus", err)
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.c", true},
		{"lib.cpp", true},
		{"lib.CXX", true},
		{"header.hpp", true},
		{"util.h", true},
		{"notes.txt", false},
		{"Makefile", false},
		{"report.pdf", false},
	}

	for _, tt := range tests {
		if got := isSourceFile(tt.path); got != tt.want {
			t.Errorf("isSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCombinedOutputPreservesStreams(t *testing.T) {
	stdout := make([]byte, 0, 32)
	stdout = append(stdout, "Checking main.c ...\n"...)
	res := &toolchain.Result{
		Stdout: stdout,
		Stderr: []byte("main.c:3:9: warning: Unused variable: x [unusedVariable]\n"),
	}

	got := combinedOutput(res)
	want := "Checking main.c ...\nmain.c:3:9: warning: Unused variable: x [unusedVariable]\n"
	if string(got) != want {
		t.Errorf("combinedOutput() = %q, want %q", got, want)
	}
	if &got[0] == &res.Stdout[0] {
		t.Error("combined output must not share the stdout backing array")
	}
}

func TestWriterLoggerStreams(t *testing.T) {
	var buf bytes.Buffer
	log := &writerLogger{w: &buf}

	log.Appendf("Generating HTML report for %s", "/tmp/proj")
	log.Append("raw chunk\n")

	want := "Generating HTML report for /tmp/proj\nraw chunk\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestResolveReportPathsUsesConfiguredNames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Report.XMLFile = "out.xml"
	cfg.Report.HTMLDir = "web"
	cfg.Report.PDFFile = "out.pdf"

	paths, err := resolveReportPaths(cfg, "/tmp/proj")
	if err != nil {
		t.Fatal(err)
	}
	if paths.XML() != "/tmp/proj/out.xml" {
		t.Errorf("XML() = %q", paths.XML())
	}
	if paths.HTMLReportDir() != "/tmp/proj/web" {
		t.Errorf("HTMLReportDir() = %q", paths.HTMLReportDir())
	}
	if paths.PDF() != "/tmp/proj/out.pdf" {
		t.Errorf("PDF() = %q", paths.PDF())
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand("dev", "none", "unknown")

	want := []string{"ui", "check", "report", "doctor", "watch", "config", "version"}
	have := make(map[string]bool)
	for _, sub := range root.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestCheckCommandRequiresDirectory(t *testing.T) {
	cmd := newCheckCommand()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("check should require a directory argument")
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("check should reject extra arguments")
	}
	if err := cmd.Args(cmd, []string{"."}); err != nil {
		t.Errorf("check should accept one directory: %v", err)
	}
}
