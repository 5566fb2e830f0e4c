package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dirPicker is a minimal directory browser. Enter descends, "s"
// selects the current directory, Esc cancels.
type dirPicker struct {
	cwd     string
	entries []string
	index   int
	err     error
}

func newDirPicker(start string) *dirPicker {
	abs, err := filepath.Abs(start)
	if err != nil {
		abs = start
	}
	p := &dirPicker{cwd: abs}
	p.load()
	return p
}

// load refreshes the subdirectory listing. Hidden directories are
// skipped; ".." is always first except at the filesystem root.
func (p *dirPicker) load() {
	p.entries = nil
	p.index = 0
	p.err = nil

	if p.cwd != filepath.Dir(p.cwd) {
		p.entries = append(p.entries, "..")
	}

	dirents, err := os.ReadDir(p.cwd)
	if err != nil {
		p.err = err
		return
	}

	var names []string
	for _, ent := range dirents {
		if ent.IsDir() && !strings.HasPrefix(ent.Name(), ".") {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	p.entries = append(p.entries, names...)
}

func (p *dirPicker) moveUp() {
	if p.index > 0 {
		p.index--
	}
}

func (p *dirPicker) moveDown() {
	if p.index < len(p.entries)-1 {
		p.index++
	}
}

func (p *dirPicker) descend() {
	if len(p.entries) == 0 {
		return
	}
	name := p.entries[p.index]
	if name == ".." {
		p.cwd = filepath.Dir(p.cwd)
	} else {
		p.cwd = filepath.Join(p.cwd, name)
	}
	p.load()
}
