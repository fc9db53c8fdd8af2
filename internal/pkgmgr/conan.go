package pkgmgr

import (
	"sort"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/env"
	"github.com/goplus/exbuild/internal/runner"
)

var (
	conanOS = map[config.OS]string{
		config.Windows: "Windows",
		config.Linux:   "Linux",
		config.Darwin:  "Macos",
	}
	conanArch = map[config.Arch]string{
		config.X64:   "x86_64",
		config.X86:   "x86",
		config.ARM64: "armv8",
	}
)

type conan struct{}

func (conan) Name() config.PkgMgr { return config.Conan }

func (conan) Probes() []runner.Command {
	return []runner.Command{{Name: "conan", Args: []string{"--version"}}}
}

func (conan) Remotes(c config.Configuration) []runner.Command {
	cmds := make([]runner.Command, 0, len(c.Remotes))
	for _, r := range c.Remotes {
		cmds = append(cmds, runner.Command{
			Name:       "conan",
			Args:       []string{"remote", "add", r.Name, r.URL},
			BestEffort: true,
		})
	}
	return cmds
}

// Install runs "conan install" from the build directory so the generated
// files land next to the CMake cache.
func (conan) Install(c config.Configuration) runner.Command {
	args := []string{
		"install", "--build=missing",
		"-s", "build_type=" + string(c.BuildType),
		"-s", "os=" + conanOS[c.OS],
		"-s", "arch=" + conanArch[c.Arch],
	}
	keys := make([]string, 0, len(c.Options))
	for k := range c.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-o", k+"="+c.Options[k])
	}
	args = append(args, c.SourceDir)
	return runner.Command{Name: "conan", Args: args, Dir: c.BuildDir}
}

func (conan) Defines(config.Configuration) map[string]string { return nil }

// DefaultToolchain returns "": the conanfile's cmake generator wires the
// dependencies in from CMakeLists.txt.
func (conan) DefaultToolchain(env.Host) (string, error) { return "", nil }
