// Package logging builds the hclog loggers used across exbuild.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// LevelEnv overrides the log level when no flag is given.
const LevelEnv = "EXBUILD_LOG_LEVEL"

// New creates a logger named name writing to w (stderr when nil).
// An empty or unknown level falls back to Level().
func New(name, level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.LevelFromString(Level())
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           lvl,
		Output:          w,
		IncludeLocation: lvl <= hclog.Debug,
	})
}

// Level returns the level from the environment, "warn" by default.
func Level() string {
	if level := os.Getenv(LevelEnv); level != "" && hclog.LevelFromString(level) != hclog.NoLevel {
		return level
	}
	return "warn"
}
