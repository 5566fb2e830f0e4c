package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

type fakeRunner struct {
	calls   [][]string
	results map[string]*toolchain.Result
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*toolchain.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	if res := f.results[name]; res != nil {
		return res, nil
	}
	return &toolchain.Result{}, nil
}

func (f *fakeRunner) called(name string) bool {
	for _, call := range f.calls {
		if call[0] == name {
			return true
		}
	}
	return false
}

func htmlGenerator(runner *fakeRunner) *HTMLGenerator {
	return &HTMLGenerator{
		Analyzer: cppcheck.NewAnalyzer("cppcheck", runner),
		Render:   "cppcheck-htmlreport",
		Runner:   runner,
		Opener:   toolchain.NewOpener(runner),
	}
}

func TestHTMLGeneratorSuccess(t *testing.T) {
	project := t.TempDir()
	xml := `<results version="2"><errors/></results>`
	runner := &fakeRunner{results: map[string]*toolchain.Result{
		"cppcheck": {Stderr: []byte(xml)},
	}}

	var log Buffer
	dir, err := htmlGenerator(runner).Generate(context.Background(), NewPaths(project), &log)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if dir != filepath.Join(project, "html_report") {
		t.Errorf("report dir = %q", dir)
	}

	data, err := os.ReadFile(filepath.Join(project, "cppcheck.xml"))
	if err != nil {
		t.Fatalf("XML file not written: %v", err)
	}
	if string(data) != xml {
		t.Errorf("XML content = %q, want diagnostic channel verbatim", data)
	}

	var renderCall []string
	for _, call := range runner.calls {
		if call[0] == "cppcheck-htmlreport" {
			renderCall = call
		}
	}
	if renderCall == nil {
		t.Fatal("render tool not invoked")
	}
	wantTitle := "Cppcheck report - " + filepath.Base(project)
	joined := strings.Join(renderCall, " ")
	if !strings.Contains(joined, "--file "+filepath.Join(project, "cppcheck.xml")) ||
		!strings.Contains(joined, "--report-dir "+dir) ||
		!strings.Contains(joined, "--source-dir "+project) ||
		!strings.Contains(joined, "--title "+wantTitle) {
		t.Errorf("render argv = %v", renderCall)
	}

	if !strings.Contains(log.String(), "HTML report saved to "+dir) {
		t.Errorf("log = %q", log.String())
	}
}

func TestHTMLGeneratorXMLRunFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"cppcheck": &toolchain.LaunchError{Tool: "cppcheck", Err: errors.New("gone")},
	}}

	var log Buffer
	_, err := htmlGenerator(runner).Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if err == nil {
		t.Fatal("expected error")
	}
	if log.Last() != "Error running cppcheck --xml\n" {
		t.Errorf("last log = %q", log.Last())
	}
	if runner.called("cppcheck-htmlreport") {
		t.Error("render tool should not run after a failed XML stage")
	}
}

func TestHTMLGeneratorWriteFailure(t *testing.T) {
	runner := &fakeRunner{results: map[string]*toolchain.Result{
		"cppcheck": {Stderr: []byte("<results/>")},
	}}
	gen := htmlGenerator(runner)
	gen.WriteFile = func(string, []byte, os.FileMode) error {
		return errors.New("disk full")
	}

	var log Buffer
	_, err := gen.Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if err == nil {
		t.Fatal("expected error")
	}
	if log.Last() != "Failed to write XML report\n" {
		t.Errorf("last log = %q, want write-failure message last", log.Last())
	}
	if runner.called("cppcheck-htmlreport") {
		t.Error("render tool should not run after a failed write")
	}
}

func TestHTMLGeneratorRenderFailure(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*toolchain.Result{"cppcheck": {Stderr: []byte("<results/>")}},
		errs: map[string]error{
			"cppcheck-htmlreport": &toolchain.LaunchError{Tool: "cppcheck-htmlreport", Err: errors.New("gone")},
		},
	}

	var log Buffer
	_, err := htmlGenerator(runner).Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if err == nil {
		t.Fatal("expected error")
	}
	if log.Last() != "Error generating HTML report\n" {
		t.Errorf("last log = %q", log.Last())
	}
}

func TestPDFGeneratorNoBrowser(t *testing.T) {
	runner := &fakeRunner{}
	gen := &PDFGenerator{Runner: runner, Opener: toolchain.NewOpener(runner)}

	var log Buffer
	_, err := gen.Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if !errors.Is(err, ErrNoBrowser) {
		t.Fatalf("error = %v, want ErrNoBrowser", err)
	}
	if log.Last() != "No PDF utility available\n" {
		t.Errorf("last log = %q", log.Last())
	}
	if len(runner.calls) != 0 {
		t.Errorf("no subprocess should run without a browser, got %v", runner.calls)
	}
}

func TestPDFGeneratorOutputMissing(t *testing.T) {
	// Browser exits normally but never creates report.pdf.
	runner := &fakeRunner{}
	gen := &PDFGenerator{Browser: "google-chrome", Runner: runner, Opener: toolchain.NewOpener(runner)}

	var log Buffer
	_, err := gen.Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if err == nil {
		t.Fatal("expected error")
	}
	if log.Last() != "PDF report was not generated\n" {
		t.Errorf("last log = %q", log.Last())
	}
	if len(runner.calls) != 1 {
		t.Errorf("nothing should be opened for a missing PDF, calls = %v", runner.calls)
	}
}

func TestPDFGeneratorLaunchFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"google-chrome": &toolchain.LaunchError{Tool: "google-chrome", Err: errors.New("gone")},
	}}
	gen := &PDFGenerator{Browser: "google-chrome", Runner: runner}

	var log Buffer
	_, err := gen.Generate(context.Background(), NewPaths(t.TempDir()), &log)
	if err == nil {
		t.Fatal("expected error")
	}
	if log.Last() != "Error generating PDF report\n" {
		t.Errorf("last log = %q", log.Last())
	}
}

func TestPDFGeneratorSuccess(t *testing.T) {
	project := t.TempDir()
	paths := NewPaths(project)
	if err := os.WriteFile(paths.PDF(), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	gen := &PDFGenerator{Browser: "google-chrome", Runner: runner, Opener: toolchain.NewOpener(runner)}

	var log Buffer
	pdf, err := gen.Generate(context.Background(), paths, &log)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if pdf != paths.PDF() {
		t.Errorf("pdf path = %q", pdf)
	}

	browserCall := runner.calls[0]
	joined := strings.Join(browserCall, " ")
	if browserCall[0] != "google-chrome" ||
		!strings.Contains(joined, "--headless") ||
		!strings.Contains(joined, "--disable-gpu") ||
		!strings.Contains(joined, "--print-to-pdf="+paths.PDF()) ||
		!strings.Contains(joined, toolchain.FileURI(paths.Index())) {
		t.Errorf("browser argv = %v", browserCall)
	}

	opened := runner.calls[len(runner.calls)-1]
	if opened[len(opened)-1] != toolchain.FileURI(paths.PDF()) {
		t.Errorf("opener argv = %v", opened)
	}

	if !strings.Contains(log.String(), "PDF report saved to "+paths.PDF()) {
		t.Errorf("log = %q", log.String())
	}
}

func TestBufferAppendOrder(t *testing.T) {
	var b Buffer
	b.Appendf("Running cppcheck on %s", "/tmp/proj")
	b.Append("stdout chunk")
	b.Append("stderr chunk")

	chunks := b.Chunks()
	if len(chunks) != 3 || chunks[1] != "stdout chunk" || chunks[2] != "stderr chunk" {
		t.Errorf("chunks = %v", chunks)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d", b.Len())
	}
}
