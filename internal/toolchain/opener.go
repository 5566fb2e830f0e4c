package toolchain

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener launches a file or URI with the platform default handler.
type Opener struct {
	runner Runner
	goos   string
}

// NewOpener creates an opener for the current platform.
func NewOpener(runner Runner) *Opener {
	return &Opener{runner: runner, goos: runtime.GOOS}
}

// Open hands target to the default-handler mechanism. The handler
// process is expected to return immediately; its output is discarded.
func (o *Opener) Open(ctx context.Context, target string) error {
	name, args := openerCommand(o.goos, target)
	_, err := o.runner.Run(ctx, name, args...)
	return err
}

func openerCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// FileURI converts an absolute filesystem path to a file:// URI.
func FileURI(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + slashed
}
