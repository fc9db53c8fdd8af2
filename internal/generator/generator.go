// Package generator holds the build-file generator strategies.
package generator

import (
	"fmt"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/runner"
)

// Generator captures what a generator choice changes in the pipeline.
type Generator interface {
	Name() config.Generator

	// CMakeName is the value passed to "cmake -G", "" for CMake's default.
	CMakeName() string

	// Probes are the version checks run during initialization.
	Probes() []runner.Command

	// Platform is the value passed to "cmake -A" for a target built on a
	// host running hostOS, "" when the generator takes the architecture
	// from the compiler environment.
	Platform(target config.OS, arch config.Arch, hostOS string) string

	// NeedsCompilerEnv reports whether builds for target on a host running
	// hostOS (a runtime.GOOS value) need a compiler environment sourced
	// before any build command runs.
	NeedsCompilerEnv(target config.OS, hostOS string) bool
}

var generators = map[config.Generator]Generator{
	config.DefaultGenerator: cmakeDefault{},
	config.Ninja:            ninja{},
}

// For returns the strategy for name.
func For(name config.Generator) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q", name)
	}
	return g, nil
}

// cmakeDefault lets CMake pick the platform generator (Visual Studio on
// Windows, which finds its own compiler).
type cmakeDefault struct{}

func (cmakeDefault) Name() config.Generator                  { return config.DefaultGenerator }
func (cmakeDefault) CMakeName() string                       { return "" }
func (cmakeDefault) Probes() []runner.Command                { return nil }
func (cmakeDefault) NeedsCompilerEnv(config.OS, string) bool { return false }

// Platform maps arch to the Visual Studio platform name. Visual Studio is
// only the default on Windows hosts, other generators reject "-A".
func (cmakeDefault) Platform(target config.OS, arch config.Arch, hostOS string) string {
	if target != config.Windows || hostOS != "windows" {
		return ""
	}
	return vsPlatform[arch]
}

var vsPlatform = map[config.Arch]string{
	config.X64:   "x64",
	config.X86:   "Win32",
	config.ARM64: "ARM64",
}

type ninja struct{}

func (ninja) Name() config.Generator { return config.Ninja }
func (ninja) CMakeName() string      { return "Ninja" }

func (ninja) Probes() []runner.Command {
	return []runner.Command{{Name: "ninja", Args: []string{"--version"}}}
}

// Ninja does not set up MSVC itself, cl.exe must already be on PATH.
// A non-Windows host cross-compiling for Windows brings its own toolchain
// file instead.
func (ninja) NeedsCompilerEnv(target config.OS, hostOS string) bool {
	return target == config.Windows && hostOS == "windows"
}

func (ninja) Platform(config.OS, config.Arch, string) string { return "" }
