package pipeline

import (
	"context"
	"strings"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/runner"
)

// fakeRunner records commands and returns the exit code chosen by exit.
type fakeRunner struct {
	calls []runner.Command
	exit  func(runner.Command) int
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command) error {
	f.calls = append(f.calls, cmd)
	if f.exit != nil {
		if code := f.exit(cmd); code != 0 {
			return &runner.ExitError{Command: cmd, Code: code}
		}
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, cmd runner.Command) ([]byte, error) {
	return nil, f.Run(ctx, cmd)
}

// trace returns "name arg0" for every recorded call.
func (f *fakeRunner) trace() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Name
		if len(c.Args) > 0 {
			out[i] += " " + c.Args[0]
		}
	}
	return out
}

// failOn fails every command whose name and first argument match.
func failOn(name, arg string, code int) func(runner.Command) int {
	return func(cmd runner.Command) int {
		if cmd.Name == name && (arg == "" || (len(cmd.Args) > 0 && cmd.Args[0] == arg)) {
			return code
		}
		return 0
	}
}

func hasArg(cmd runner.Command, sub string) bool {
	for _, a := range cmd.Args {
		if strings.Contains(a, sub) {
			return true
		}
	}
	return false
}

type fakeCompilerEnv struct {
	env   map[string]string
	err   error
	calls int
	arch  config.Arch
}

func (f *fakeCompilerEnv) Environment(ctx context.Context, arch config.Arch) (map[string]string, error) {
	f.calls++
	f.arch = arch
	return f.env, f.err
}
