package toolchain

import "os/exec"

// LookupFunc resolves an executable name to a path, in the manner of
// exec.LookPath.
type LookupFunc func(name string) (string, error)

// Availability maps an executable name to whether it was found on the
// search path at probe time.
type Availability map[string]bool

// Probe checks each tool once and records whether it is reachable.
// Any lookup error counts as "not found"; permission problems are not
// distinguished from absence.
func Probe(tools []string, lookup LookupFunc) Availability {
	if lookup == nil {
		lookup = exec.LookPath
	}
	avail := make(Availability, len(tools))
	for _, tool := range tools {
		_, err := lookup(tool)
		avail[tool] = err == nil
	}
	return avail
}

// Missing returns the subset of tools that probed unavailable,
// preserving the order of the probe list.
func Missing(tools []string, avail Availability) []string {
	var missing []string
	for _, tool := range tools {
		if !avail[tool] {
			missing = append(missing, tool)
		}
	}
	return missing
}
