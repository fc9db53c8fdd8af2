// Package pkgmgr holds the third-party package manager strategies.
package pkgmgr

import (
	"errors"
	"fmt"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/env"
	"github.com/goplus/exbuild/internal/runner"
)

// ErrToolNotFound is returned when a package manager installation cannot be
// located on the host.
var ErrToolNotFound = errors.New("package manager not found")

// Manager captures what a package manager choice changes in the pipeline.
type Manager interface {
	Name() config.PkgMgr

	// Probes are the version checks run during initialization.
	Probes() []runner.Command

	// Remotes registers package registries. The commands are best-effort.
	Remotes(c config.Configuration) []runner.Command

	// Install acquires the third-parties into the build directory.
	Install(c config.Configuration) runner.Command

	// Defines are extra CMake cache entries needed at configure time.
	Defines(c config.Configuration) map[string]string

	// DefaultToolchain returns the toolchain file to use when none was
	// given, "" when the package manager does not need one.
	DefaultToolchain(h env.Host) (string, error)
}

var managers = map[config.PkgMgr]Manager{
	config.Conan: conan{},
	config.Vcpkg: vcpkg{},
}

// For returns the strategy for name.
func For(name config.PkgMgr) (Manager, error) {
	m, ok := managers[name]
	if !ok {
		return nil, fmt.Errorf("unknown package manager %q", name)
	}
	return m, nil
}

// DefaultToolchain adapts the managers' default toolchain lookup to
// config.Resolver.Toolchain.
func DefaultToolchain(h env.Host) func(config.PkgMgr) (string, error) {
	return func(pm config.PkgMgr) (string, error) {
		m, err := For(pm)
		if err != nil {
			return "", err
		}
		return m.DefaultToolchain(h)
	}
}
