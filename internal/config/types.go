package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// OS is a target operating system.
type OS string

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	Darwin  OS = "darwin"
)

// Arch is a target CPU architecture.
type Arch string

const (
	X64   Arch = "x64"
	X86   Arch = "x86"
	ARM64 Arch = "arm64"
)

// BuildType selects the CMake build configuration.
type BuildType string

const (
	Debug   BuildType = "Debug"
	Release BuildType = "Release"
)

// PkgMgr names the package manager acquiring third-parties.
type PkgMgr string

const (
	Conan PkgMgr = "conan"
	Vcpkg PkgMgr = "vcpkg"
)

// Generator selects the build-file generator handed to CMake.
type Generator string

const (
	DefaultGenerator Generator = "default"
	Ninja            Generator = "ninja"
)

var (
	allOS         = []OS{Windows, Linux, Darwin}
	allArchs      = []Arch{X64, X86, ARM64}
	allBuildTypes = []BuildType{Debug, Release}
	allPkgMgrs    = []PkgMgr{Conan, Vcpkg}
	allGenerators = []Generator{DefaultGenerator, Ninja}
)

var (
	_ pflag.Value = (*OS)(nil)
	_ pflag.Value = (*Arch)(nil)
	_ pflag.Value = (*BuildType)(nil)
	_ pflag.Value = (*PkgMgr)(nil)
	_ pflag.Value = (*Generator)(nil)
)

func (v *OS) String() string { return string(*v) }
func (v *OS) Type() string { return "os" }

func (v *OS) Set(s string) error {
	return set(v, s, allOS)
}

func (v *Arch) String() string { return string(*v) }
func (v *Arch) Type() string { return "arch" }

func (v *Arch) Set(s string) error {
	return set(v, s, allArchs)
}

func (v *PkgMgr) String() string { return string(*v) }
func (v *PkgMgr) Type() string { return "pkg_mgr" }

func (v *PkgMgr) Set(s string) error {
	return set(v, s, allPkgMgrs)
}

func (v *Generator) String() string { return string(*v) }
func (v *Generator) Type() string { return "generator" }

func (v *Generator) Set(s string) error {
	return set(v, s, allGenerators)
}

func (v *BuildType) String() string { return string(*v) }
func (v *BuildType) Type() string { return "build_type" }

// Set accepts the build type case-insensitively ("release" or "Release").
func (v *BuildType) Set(s string) error {
	for _, bt := range allBuildTypes {
		if strings.EqualFold(string(bt), s) {
			*v = bt
			return nil
		}
	}
	return invalid(s, allBuildTypes)
}

func set[T ~string](v *T, s string, allowed []T) error {
	for _, a := range allowed {
		if string(a) == s {
			*v = a
			return nil
		}
	}
	return invalid(s, allowed)
}

func invalid[T ~string](s string, allowed []T) error {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("invalid value %q, must be one of: %s", s, strings.Join(names, ", "))
}

// Remote is a package registry registered with the package manager.
type Remote struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultRemotes are the conan registries the project has always pulled
// third-parties from.
var DefaultRemotes = []Remote{
	{Name: "bincrafters", URL: "https://api.bintray.com/conan/bincrafters/public-conan"},
	{Name: "pmenuet", URL: "https://api.bintray.com/conan/pmenuet/public-conan"},
}
