// Package env describes the host the orchestrator runs on.
package env

import (
	"os"
	"os/exec"
	"runtime"
)

// Host holds the host facts used to default a build configuration.
// The function fields allow tests to fake tool lookup and environment.
type Host struct {
	OS   string // runtime.GOOS value, e.g. "linux"
	Arch string // runtime.GOARCH value, e.g. "amd64"

	LookPath func(file string) (string, error)
	Getenv   func(key string) string
}

// Detect returns the Host describing the running process.
func Detect() Host {
	return Host{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
	}
}

// Lookup searches the executable search path for file.
// It reports exec.ErrNotFound when the host has no LookPath.
func (h Host) Lookup(file string) (string, error) {
	if h.LookPath == nil {
		return "", exec.ErrNotFound
	}
	return h.LookPath(file)
}

// Env returns the value of key, or "" when the host has no Getenv.
func (h Host) Env(key string) string {
	if h.Getenv == nil {
		return ""
	}
	return h.Getenv(key)
}
