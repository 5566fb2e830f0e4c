package toolchain

import (
	"context"
	"errors"
)

// ErrInstallerDisarmed is returned when Install is called after its
// single permitted invocation.
var ErrInstallerDisarmed = errors.New("installer already ran")

// DefaultInstallCommand is the argv prefix for installing packages with
// elevated privilege on Debian-family systems.
var DefaultInstallCommand = []string{"sudo", "apt-get", "install", "-y"}

// Installer installs missing tools through the platform package
// manager. It disarms after one invocation whether or not the
// installation succeeded; re-probing requires a fresh process or a new
// Installer.
type Installer struct {
	command []string
	runner  Runner
	armed   bool
}

// NewInstaller creates an armed installer. command is the package
// manager argv prefix; the missing tool names are appended to it.
func NewInstaller(command []string, runner Runner) *Installer {
	if len(command) == 0 {
		command = DefaultInstallCommand
	}
	return &Installer{command: command, runner: runner, armed: true}
}

// Armed reports whether Install may still be invoked.
func (i *Installer) Armed() bool {
	return i.armed
}

// Install runs the package manager with the missing tool list. The
// installer disarms before the subprocess starts, so a failed install
// does not re-enable the action.
func (i *Installer) Install(ctx context.Context, missing []string) (*Result, error) {
	if !i.armed {
		return nil, ErrInstallerDisarmed
	}
	i.armed = false

	args := append(append([]string{}, i.command[1:]...), missing...)
	return i.runner.Run(ctx, i.command[0], args...)
}
