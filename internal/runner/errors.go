package runner

import (
	"errors"
	"fmt"
)

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
}

// ExitCode maps err to a process exit status: 0 for nil, the tool's own
// status for an ExitError and 1 for anything else. An ExitError without a
// usable status (negative, as reported for signaled children) maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
