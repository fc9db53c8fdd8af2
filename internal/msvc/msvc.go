// Package msvc captures the environment of a Visual Studio C++ toolchain.
//
// Generators such as Ninja expect cl.exe, INCLUDE and LIB to be set up
// already. The Locator finds the newest Visual Studio installation with the
// C++ tools through vswhere, runs its vcvarsall.bat, dumps the resulting
// environment as UTF-8 with "set" and returns it as an overlay for later
// commands.
package msvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/runner"
)

// defaultProgramFilesX86 is used when neither the environment nor the shell
// known-folder lookup yields the 32-bit program files directory.
const defaultProgramFilesX86 = `C:\Program Files (x86)`

// ErrNoInstallation is returned when vswhere lists no usable installation.
var ErrNoInstallation = errors.New("no Visual Studio installation with C++ tools found")

var vcvarsArch = map[config.Arch]string{
	config.X64:   "x64",
	config.X86:   "x86",
	config.ARM64: "arm64",
}

// Locator finds and sources a Visual Studio compiler environment.
type Locator struct {
	Runner runner.Runner
	Getenv func(string) string

	// TempDir holds the transient environment dump, "" for os.TempDir().
	TempDir string

	Logger hclog.Logger
}

// Environment returns the variables set by vcvarsall.bat for arch.
func (l *Locator) Environment(ctx context.Context, arch config.Arch) (map[string]string, error) {
	logger := l.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	inst, err := l.latest(ctx)
	if err != nil {
		return nil, err
	}
	script := filepath.Join(inst.InstallationPath, "VC", "Auxiliary", "Build", "vcvarsall.bat")
	logger.Info("using Visual Studio", "name", inst.DisplayName, "version", inst.InstallationVersion, "script", script)

	dump, err := os.CreateTemp(l.TempDir, "exbuild-env-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create environment dump: %w", err)
	}
	dumpPath := dump.Name()
	dump.Close()
	defer os.Remove(dumpPath)

	if err := l.Runner.Run(ctx, sourceCommand(script, vcvarsArch[arch], dumpPath)); err != nil {
		return nil, err
	}

	f, err := os.Open(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("open environment dump: %w", err)
	}
	defer f.Close()

	env, err := ParseEnvDump(f)
	if err != nil {
		return nil, fmt.Errorf("read environment dump: %w", err)
	}
	logger.Debug("captured compiler environment", "variables", len(env))
	return env, nil
}

func (l *Locator) latest(ctx context.Context) (installation, error) {
	out, err := l.Runner.Output(ctx, vswhereCommand(l.vswherePath()))
	if err != nil {
		return installation{}, fmt.Errorf("locate Visual Studio: %w", err)
	}
	return latestInstallation(out)
}

func (l *Locator) vswherePath() string {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return filepath.Join(programFilesX86(getenv), "Microsoft Visual Studio", "Installer", "vswhere.exe")
}

func vswhereCommand(vswhere string) runner.Command {
	return runner.Command{
		Name: vswhere,
		Args: []string{
			"-products", "*",
			"-requires", "Microsoft.VisualStudio.Component.VC.Tools.x86.x64",
			"-format", "json",
			"-utf8",
		},
	}
}

// sourceCommand runs script in a cmd.exe session and redirects the
// resulting environment into dumpPath. The session switches to the UTF-8
// code page first, otherwise "set" writes the dump in the OEM code page.
func sourceCommand(script, arch, dumpPath string) runner.Command {
	return runner.Command{
		Name: "cmd.exe",
		Args: []string{
			"/d", "/c",
			"chcp", "65001", ">nul", "&&",
			"call", script, arch, "&&",
			"set", ">", dumpPath,
		},
	}
}
