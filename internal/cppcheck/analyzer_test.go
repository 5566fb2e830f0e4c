package cppcheck

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mkutlay/checkdeck/internal/toolchain"
)

type fakeRunner struct {
	calls  [][]string
	result *toolchain.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*toolchain.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &toolchain.Result{}, nil
}

func TestAnalyzerRun(t *testing.T) {
	runner := &fakeRunner{result: &toolchain.Result{
		Stdout: []byte("Checking main.c ...\n"),
		Stderr: []byte("main.c:3:9: warning: Unused variable: x [unusedVariable]\n"),
	}}
	analyzer := NewAnalyzer("", runner)

	res, err := analyzer.Run(context.Background(), "/tmp/proj", Filters{Warning: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"cppcheck", "--enable=warning", "/tmp/proj"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("argv = %v, want %v", runner.calls[0], want)
	}
	if string(res.Stderr) != "main.c:3:9: warning: Unused variable: x [unusedVariable]\n" {
		t.Errorf("stderr not captured verbatim: %q", res.Stderr)
	}
}

func TestAnalyzerRunNoProject(t *testing.T) {
	runner := &fakeRunner{}
	analyzer := NewAnalyzer("cppcheck", runner)

	_, err := analyzer.Run(context.Background(), "", DefaultFilters())
	if !errors.Is(err, ErrNoProject) {
		t.Fatalf("Run(\"\") error = %v, want ErrNoProject", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("no subprocess should be invoked without a project, got %v", runner.calls)
	}
}

func TestAnalyzerRunXML(t *testing.T) {
	runner := &fakeRunner{}
	analyzer := NewAnalyzer("cppcheck", runner)

	if _, err := analyzer.RunXML(context.Background(), "/tmp/proj"); err != nil {
		t.Fatalf("RunXML() error: %v", err)
	}

	want := []string{"cppcheck", "--xml", "--xml-version=2", "/tmp/proj"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("argv = %v, want %v", runner.calls[0], want)
	}

	if _, err := analyzer.RunXML(context.Background(), ""); !errors.Is(err, ErrNoProject) {
		t.Errorf("RunXML(\"\") error = %v, want ErrNoProject", err)
	}
}

func TestAnalyzerRunXMLFiltered(t *testing.T) {
	runner := &fakeRunner{}
	analyzer := NewAnalyzer("cppcheck", runner)

	_, err := analyzer.RunXMLFiltered(context.Background(), "/tmp/proj", Filters{Warning: true, Style: true})
	if err != nil {
		t.Fatalf("RunXMLFiltered() error: %v", err)
	}

	want := []string{"cppcheck", "--enable=warning,style", "--xml", "--xml-version=2", "/tmp/proj"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("argv = %v, want %v", runner.calls[0], want)
	}

	if _, err := analyzer.RunXMLFiltered(context.Background(), "", DefaultFilters()); !errors.Is(err, ErrNoProject) {
		t.Errorf("RunXMLFiltered(\"\") error = %v, want ErrNoProject", err)
	}
}

func TestAnalyzerLaunchFailure(t *testing.T) {
	launchErr := &toolchain.LaunchError{Tool: "cppcheck", Err: errors.New("executable file not found")}
	runner := &fakeRunner{err: launchErr}
	analyzer := NewAnalyzer("cppcheck", runner)

	_, err := analyzer.Run(context.Background(), "/tmp/proj", DefaultFilters())
	var le *toolchain.LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
}
