// Package opener launches a path in the host's default file-manager
// or application. No example dependency covers OS-level launch
// dispatch, so this shells out directly to one launcher chosen by
// platform: open on darwin, start on windows, xdg-open elsewhere.
package opener

import (
	"os/exec"
	"runtime"
)

// Opener launches path using whatever the host OS considers its
// default handler for it.
type Opener interface {
	Open(path string) error
}

// commandOpener shells out to the platform's launch command.
type commandOpener struct{}

// New returns the platform Opener.
func New() Opener { return commandOpener{} }

func (commandOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
