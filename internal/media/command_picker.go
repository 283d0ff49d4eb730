// ABOUTME: Picker implementation that shells out to a native chooser command
// ABOUTME: The command prints a chosen path on stdout, or nothing on cancel

package media

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandPicker runs an external chooser program (zenity, kdialog, a
// wrapper script) to present the native file dialog. The program
// receives the kind and the allowed extensions as arguments and
// prints the chosen path; empty output means the user cancelled.
type CommandPicker struct {
	Command string
}

// Pick runs the chooser command for the given kind.
func (p *CommandPicker) Pick(ctx context.Context, kind Kind) (string, error) {
	args := append([]string{string(kind)}, Extensions(kind)...)
	out, err := exec.CommandContext(ctx, p.Command, args...).Output()
	if err != nil {
		// Chooser programs exit non-zero on cancel; treat that as an
		// empty pick rather than a failure.
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("running picker command %q: %w", p.Command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// NoPicker is a Picker for environments without a native chooser; it
// always reports cancellation.
var NoPicker = PickerFunc(func(ctx context.Context, kind Kind) (string, error) {
	return "", nil
})
