package pkgmgr

import (
	"fmt"
	"path/filepath"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/env"
	"github.com/goplus/exbuild/internal/runner"
)

// toolchainSuffix is the vcpkg CMake integration relative to the vcpkg root.
var toolchainSuffix = filepath.Join("scripts", "buildsystems", "vcpkg.cmake")

var vcpkgOS = map[config.OS]string{
	config.Windows: "windows",
	config.Linux:   "linux",
	config.Darwin:  "osx",
}

type vcpkg struct{}

func (vcpkg) Name() config.PkgMgr { return config.Vcpkg }

func (vcpkg) Probes() []runner.Command {
	return []runner.Command{{Name: "vcpkg", Args: []string{"version"}}}
}

func (vcpkg) Remotes(config.Configuration) []runner.Command { return nil }

// Install runs vcpkg in manifest mode against the project's vcpkg.json.
func (vcpkg) Install(c config.Configuration) runner.Command {
	return runner.Command{
		Name: "vcpkg",
		Args: []string{
			"install",
			"--triplet", Triplet(c),
			"--x-manifest-root=" + c.SourceDir,
			"--x-install-root=" + installRoot(c),
		},
		Dir: c.BuildDir,
	}
}

func (vcpkg) Defines(c config.Configuration) map[string]string {
	return map[string]string{
		"VCPKG_TARGET_TRIPLET": Triplet(c),
		"VCPKG_INSTALLED_DIR":  installRoot(c),
	}
}

// DefaultToolchain locates vcpkg through $VCPKG_ROOT, then the executable
// search path.
func (vcpkg) DefaultToolchain(h env.Host) (string, error) {
	if root := h.Env("VCPKG_ROOT"); root != "" {
		return filepath.Join(root, toolchainSuffix), nil
	}
	exe, err := h.Lookup("vcpkg")
	if err != nil {
		return "", fmt.Errorf("%w: vcpkg: %v", ErrToolNotFound, err)
	}
	return filepath.Join(filepath.Dir(exe), toolchainSuffix), nil
}

// Triplet returns the vcpkg triplet for c, e.g. "x64-windows".
func Triplet(c config.Configuration) string {
	return string(c.Arch) + "-" + vcpkgOS[c.OS]
}

func installRoot(c config.Configuration) string {
	return filepath.Join(c.BuildDir, "vcpkg_installed")
}
