package toolchain

import "os/exec"

// DefaultBrowsers is the headless-PDF candidate list, most preferred
// first.
var DefaultBrowsers = []string{"google-chrome", "chromium-browser", "chromium"}

// FindBrowser returns the first candidate reachable on the search
// path. The boolean is false when none of the candidates is available.
func FindBrowser(candidates []string, lookup LookupFunc) (string, bool) {
	if lookup == nil {
		lookup = exec.LookPath
	}
	for _, name := range candidates {
		if _, err := lookup(name); err == nil {
			return name, true
		}
	}
	return "", false
}
