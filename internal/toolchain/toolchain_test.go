package toolchain

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeRunner struct {
	calls  [][]string
	result *Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.result == nil && f.err == nil {
		return &Result{}, nil
	}
	return f.result, f.err
}

func fakeLookup(found ...string) LookupFunc {
	set := make(map[string]bool, len(found))
	for _, name := range found {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func TestProbe(t *testing.T) {
	tools := []string{"cppcheck", "cppcheck-htmlreport", "google-chrome"}
	avail := Probe(tools, fakeLookup("cppcheck"))

	want := Availability{
		"cppcheck":            true,
		"cppcheck-htmlreport": false,
		"google-chrome":       false,
	}
	if !reflect.DeepEqual(avail, want) {
		t.Errorf("Probe() = %v, want %v", avail, want)
	}
}

func TestMissingPreservesOrder(t *testing.T) {
	tools := []string{"cppcheck", "cppcheck-htmlreport", "google-chrome"}
	avail := Probe(tools, fakeLookup("cppcheck-htmlreport"))

	want := []string{"cppcheck", "google-chrome"}
	if got := Missing(tools, avail); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestMissingEmptyWhenAllPresent(t *testing.T) {
	tools := []string{"cppcheck"}
	avail := Probe(tools, fakeLookup("cppcheck"))
	if got := Missing(tools, avail); got != nil {
		t.Errorf("Missing() = %v, want nil", got)
	}
}

func TestExecRunnerLaunchError(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "checkdeck-no-such-binary-for-test")
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
	if launchErr.Tool != "checkdeck-no-such-binary-for-test" {
		t.Errorf("LaunchError.Tool = %q", launchErr.Tool)
	}
}

func TestExecRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecRunner{}.Run(ctx, "sleep", "10")
	if err == nil {
		t.Fatal("a canceled run must not look like a completed one")
	}
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled in the chain", err)
	}
}

func TestInstallerRunsOnce(t *testing.T) {
	runner := &fakeRunner{}
	inst := NewInstaller(nil, runner)

	if !inst.Armed() {
		t.Fatal("new installer should be armed")
	}

	_, err := inst.Install(context.Background(), []string{"cppcheck", "google-chrome"})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if inst.Armed() {
		t.Error("installer should disarm after first invocation")
	}

	want := []string{"sudo", "apt-get", "install", "-y", "cppcheck", "google-chrome"}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("install argv = %v, want %v", runner.calls, want)
	}

	if _, err := inst.Install(context.Background(), []string{"cppcheck"}); !errors.Is(err, ErrInstallerDisarmed) {
		t.Errorf("second Install() error = %v, want ErrInstallerDisarmed", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("second Install() invoked the runner: %v", runner.calls)
	}
}

func TestInstallerDisarmsOnLaunchFailure(t *testing.T) {
	runner := &fakeRunner{err: &LaunchError{Tool: "sudo", Err: errors.New("no sudo")}}
	inst := NewInstaller([]string{"sudo", "apt-get", "install", "-y"}, runner)

	if _, err := inst.Install(context.Background(), []string{"cppcheck"}); err == nil {
		t.Fatal("expected launch error")
	}
	if inst.Armed() {
		t.Error("installer should disarm even when the install fails")
	}
}

func TestFindBrowser(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		found      []string
		want       string
		wantOK     bool
	}{
		{
			name:       "first preference wins",
			candidates: []string{"google-chrome", "chromium-browser"},
			found:      []string{"google-chrome", "chromium-browser"},
			want:       "google-chrome",
			wantOK:     true,
		},
		{
			name:       "falls back to later candidate",
			candidates: []string{"google-chrome", "chromium-browser"},
			found:      []string{"chromium-browser"},
			want:       "chromium-browser",
			wantOK:     true,
		},
		{
			name:       "none available",
			candidates: []string{"google-chrome", "chromium-browser"},
			found:      nil,
			want:       "",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindBrowser(tt.candidates, fakeLookup(tt.found...))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FindBrowser() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openerCommand(tt.goos, "file:///tmp/report.pdf")
			if name != tt.wantName {
				t.Errorf("openerCommand(%q) name = %q, want %q", tt.goos, name, tt.wantName)
			}
			if args[len(args)-1] != "file:///tmp/report.pdf" {
				t.Errorf("openerCommand(%q) args = %v, target missing", tt.goos, args)
			}
		})
	}
}

func TestFileURI(t *testing.T) {
	if got := FileURI("/tmp/proj/html_report/index.html"); got != "file:///tmp/proj/html_report/index.html" {
		t.Errorf("FileURI() = %q", got)
	}
}
