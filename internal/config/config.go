// Package config resolves the build configuration the orchestrator runs with.
//
// A Configuration is computed once from command-line options, an optional
// config file and host probing, and is read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goplus/exbuild/internal/env"
	"github.com/hashicorp/go-hclog"
)

// Configuration is a fully resolved build configuration.
type Configuration struct {
	OS        OS
	Arch      Arch
	BuildType BuildType
	PkgMgr    PkgMgr
	Generator Generator

	SourceDir     string // absolute project directory
	BuildDir      string // derived, see BuildDir
	ToolchainFile string // "" lets CMake pick its default

	Options map[string]string // package options forwarded to the package manager
	Remotes []Remote
}

// Matrix returns the discriminating fields of c as a single-valued Matrix.
func (c Configuration) Matrix() Matrix {
	return Matrix{
		"arch":       {string(c.Arch)},
		"build_type": {string(c.BuildType)},
		"generator":  {string(c.Generator)},
		"os":         {string(c.OS)},
		"pkg_mgr":    {string(c.PkgMgr)},
	}
}

// BuildDir returns the build output directory for c under sourceDir:
//
//	<sourceDir>/build/<arch>-<build_type>-<generator>-<os>-<pkg_mgr>
//
// Equal tuples map to the same directory so prior outputs are reused, and no
// enumerated value contains "-" so distinct tuples never collide.
func BuildDir(sourceDir string, c Configuration) string {
	return filepath.Join(sourceDir, "build", c.Matrix().String())
}

// Options are the raw user choices. Zero values mean "use the default".
type Options struct {
	OS        OS
	Arch      Arch
	BuildType BuildType
	PkgMgr    PkgMgr
	Generator Generator

	SourceDir     string
	ToolchainFile string

	UseBoostFilesystem bool

	// File holds values read from a config file; flags take precedence.
	File *File
}

// Resolver turns Options into a Configuration.
type Resolver struct {
	Host env.Host

	// Toolchain returns the default toolchain file of a package manager.
	// An error degrades to "" with a warning.
	Toolchain func(pm PkgMgr) (string, error)

	Logger hclog.Logger
}

// ErrUnsupportedHost is returned when the host OS or architecture has no
// matching enumerated value and no override was given.
var ErrUnsupportedHost = errors.New("unsupported host")

// Resolve fills every field of the configuration.
func (r *Resolver) Resolve(opts Options) (Configuration, error) {
	logger := r.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	file := opts.File
	if file == nil {
		file = &File{}
	}

	var c Configuration
	var err error

	if c.OS, err = r.hostOS(opts.OS); err != nil {
		return Configuration{}, err
	}
	if c.Arch, err = r.hostArch(opts.Arch); err != nil {
		return Configuration{}, err
	}
	c.BuildType = pick(opts.BuildType, file.BuildType, Debug)
	c.PkgMgr = pick(opts.PkgMgr, file.PkgMgr, Conan)
	c.Generator = pick(opts.Generator, file.Generator, DefaultGenerator)

	if c.SourceDir, err = filepath.Abs(pick(opts.SourceDir, file.SourceDir, ".")); err != nil {
		return Configuration{}, fmt.Errorf("resolve source dir: %w", err)
	}
	c.BuildDir = BuildDir(c.SourceDir, c)

	c.ToolchainFile = opts.ToolchainFile
	if c.ToolchainFile == "" {
		c.ToolchainFile = file.ToolchainFile
	}
	if c.ToolchainFile == "" && r.Toolchain != nil {
		tc, err := r.Toolchain(c.PkgMgr)
		if err != nil {
			logger.Warn("cannot locate default toolchain file, letting CMake choose", "pkg_mgr", c.PkgMgr, "error", err)
			tc = ""
		}
		c.ToolchainFile = tc
	}

	c.Options = make(map[string]string, len(file.Options)+1)
	for k, v := range file.Options {
		c.Options[k] = v
	}
	if c.PkgMgr == Conan {
		if _, ok := c.Options["use_boost_filesystem"]; !ok || opts.UseBoostFilesystem {
			c.Options["use_boost_filesystem"] = pythonBool(opts.UseBoostFilesystem)
		}
	}

	c.Remotes = file.Remotes
	if c.Remotes == nil && c.PkgMgr == Conan {
		c.Remotes = DefaultRemotes
	}

	logger.Debug("resolved configuration",
		"os", c.OS, "arch", c.Arch, "build_type", c.BuildType,
		"pkg_mgr", c.PkgMgr, "generator", c.Generator,
		"build_dir", c.BuildDir, "toolchain_file", c.ToolchainFile)
	return c, nil
}

func (r *Resolver) hostOS(override OS) (OS, error) {
	if override != "" {
		return override, nil
	}
	switch r.Host.OS {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin":
		return Darwin, nil
	}
	return "", fmt.Errorf("%w os %q, pass --os", ErrUnsupportedHost, r.Host.OS)
}

func (r *Resolver) hostArch(override Arch) (Arch, error) {
	if override != "" {
		return override, nil
	}
	switch r.Host.Arch {
	case "amd64":
		return X64, nil
	case "386":
		return X86, nil
	case "arm64":
		return ARM64, nil
	}
	return "", fmt.Errorf("%w arch %q, pass --arch", ErrUnsupportedHost, r.Host.Arch)
}

func pick[T ~string](flag, file, def T) T {
	if flag != "" {
		return flag
	}
	if file != "" {
		return file
	}
	return def
}

// pythonBool spells b the way conanfile options expect it.
func pythonBool(b bool) string {
	s := strconv.FormatBool(b)
	return strings.ToUpper(s[:1]) + s[1:]
}
