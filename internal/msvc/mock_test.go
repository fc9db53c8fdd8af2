package msvc

import (
	"context"
	"os"

	"github.com/goplus/exbuild/internal/runner"
)

// fakeRunner answers vswhere with a canned listing and emulates the
// cmd.exe session by writing dump into the redirect target.
type fakeRunner struct {
	vswhere []byte
	dump    string
	runErr  error

	calls []runner.Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command) error {
	f.calls = append(f.calls, cmd)
	if f.runErr != nil {
		return f.runErr
	}
	target := cmd.Args[len(cmd.Args)-1]
	return os.WriteFile(target, []byte(f.dump), 0o644)
}

func (f *fakeRunner) Output(ctx context.Context, cmd runner.Command) ([]byte, error) {
	f.calls = append(f.calls, cmd)
	return f.vswhere, nil
}
