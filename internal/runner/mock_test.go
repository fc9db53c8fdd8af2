package runner

import (
	"context"
)

// recordingRunner records every command and fails the ones selected by fail.
type recordingRunner struct {
	calls []Command
	fail  func(Command) error
}

func (r *recordingRunner) Run(ctx context.Context, cmd Command) error {
	r.calls = append(r.calls, cmd)
	if r.fail != nil {
		return r.fail(cmd)
	}
	return nil
}

func (r *recordingRunner) Output(ctx context.Context, cmd Command) ([]byte, error) {
	return nil, r.Run(ctx, cmd)
}
