// Package clipboard copies text to the system clipboard via shell
// commands, so scraped cite strings can be pasted straight into a
// mindmap node.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when clipboard access is not available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// copyCommand returns the platform's clipboard-write command, or nil.
func copyCommand() *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy")
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard")
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input")
		}
	}
	return nil
}

// IsAvailable checks if clipboard functionality is available on this system.
func IsAvailable() bool {
	return copyCommand() != nil
}

// Copy copies the given text to the system clipboard.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Copy(text string) error {
	cmd := copyCommand()
	if cmd == nil {
		return ErrClipboardUnavailable
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
