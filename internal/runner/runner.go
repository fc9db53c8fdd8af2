package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
)

// Runner executes commands. Implementations other than Exec are used in
// tests to record invocations without spawning processes.
type Runner interface {
	// Run executes cmd, streaming its output, and blocks until it exits.
	Run(ctx context.Context, cmd Command) error

	// Output executes cmd and returns its standard output.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// Exec runs commands as child processes.
type Exec struct {
	stdout  io.Writer
	stderr  io.Writer
	trace   io.Writer
	environ func() []string
}

// Option configures Exec.
type Option func(*Exec)

// WithStdout sets where child standard output goes.
func WithStdout(w io.Writer) Option {
	return func(e *Exec) {
		e.stdout = w
	}
}

// WithStderr sets where child standard error goes.
func WithStderr(w io.Writer) Option {
	return func(e *Exec) {
		e.stderr = w
	}
}

// WithTrace sets where the command trace is written.
func WithTrace(w io.Writer) Option {
	return func(e *Exec) {
		e.trace = w
	}
}

// NewExec creates an Exec writing to the process stdout/stderr and tracing
// to stdout.
func NewExec(opts ...Option) *Exec {
	e := &Exec{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		trace:   os.Stdout,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exec) Run(ctx context.Context, cmd Command) error {
	c := e.command(ctx, cmd)
	c.Stdout = e.stdout
	c.Stderr = e.stderr
	return wrapErr(cmd, c.Run())
}

func (e *Exec) Output(ctx context.Context, cmd Command) ([]byte, error) {
	c := e.command(ctx, cmd)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = e.stderr
	if err := c.Run(); err != nil {
		return nil, wrapErr(cmd, err)
	}
	return stdout.Bytes(), nil
}

func (e *Exec) command(ctx context.Context, cmd Command) *exec.Cmd {
	if e.trace != nil {
		fmt.Fprintf(e.trace, "+ %s\n", cmd)
	}
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		c.Env = mergeEnv(e.environ(), cmd.Env)
	}
	return c
}

func wrapErr(cmd Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd, Code: exitStatus(exitErr)}
	}
	return fmt.Errorf("run %s: %w", cmd.Name, err)
}

// exitStatus follows the shell convention of 128+signal for children killed
// by a signal, where exec.ExitError reports -1.
func exitStatus(err *exec.ExitError) int {
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

// RunAll runs cmds in order. A failing required command stops the sequence
// and its error is returned; failing best-effort commands are only logged.
func RunAll(ctx context.Context, r Runner, logger hclog.Logger, cmds ...Command) error {
	for _, cmd := range cmds {
		err := r.Run(ctx, cmd)
		if err == nil {
			continue
		}
		if cmd.BestEffort {
			logger.Debug("ignoring best-effort command failure", "command", cmd.String(), "error", err)
			continue
		}
		return err
	}
	return nil
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
