// Package runner executes external tools described by typed commands.
package runner

import (
	"fmt"
	"strings"
)

// Command describes one external tool invocation.
type Command struct {
	Name string   // executable, resolved through PATH
	Args []string // ordered arguments
	Dir  string   // working directory, "" means the current one

	// Env is an overlay applied on top of the process environment.
	Env map[string]string

	// BestEffort commands may fail without stopping the pipeline.
	BestEffort bool
}

// Argv returns the full argument vector including the executable name.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the quoted argument list, e.g. ["cmake" "--build" "out"].
func (c Command) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q", c.Argv())
	if c.Dir != "" {
		fmt.Fprintf(&sb, " (in %s)", c.Dir)
	}
	return sb.String()
}

// WithDir returns a copy of c running in dir.
func (c Command) WithDir(dir string) Command {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of c whose overlay also carries env.
// Keys already set on c win.
func (c Command) WithEnv(env map[string]string) Command {
	if len(env) == 0 {
		return c
	}
	merged := make(map[string]string, len(env)+len(c.Env))
	for k, v := range env {
		merged[k] = v
	}
	for k, v := range c.Env {
		merged[k] = v
	}
	c.Env = merged
	return c
}
