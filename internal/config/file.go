package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML project file. It supplies defaults that
// command-line flags override.
//
//	pkg_mgr: vcpkg
//	build_type: Release
//	generator: ninja
//	options:
//	  use_boost_filesystem: "True"
//	remotes:
//	  - name: bincrafters
//	    url: https://api.bintray.com/conan/bincrafters/public-conan
type File struct {
	SourceDir     string    `yaml:"source_dir"`
	PkgMgr        PkgMgr    `yaml:"pkg_mgr"`
	BuildType     BuildType `yaml:"build_type"`
	Generator     Generator `yaml:"generator"`
	ToolchainFile string    `yaml:"toolchain_file"`

	Options map[string]string `yaml:"options"`
	Remotes []Remote          `yaml:"remotes"`
}

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes and validates config file contents.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.PkgMgr != "" {
		if err := new(PkgMgr).Set(string(f.PkgMgr)); err != nil {
			return fmt.Errorf("pkg_mgr: %w", err)
		}
	}
	if f.BuildType != "" {
		bt := new(BuildType)
		if err := bt.Set(string(f.BuildType)); err != nil {
			return fmt.Errorf("build_type: %w", err)
		}
		f.BuildType = *bt
	}
	if f.Generator != "" {
		if err := new(Generator).Set(string(f.Generator)); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	for i, r := range f.Remotes {
		if r.Name == "" || r.URL == "" {
			return fmt.Errorf("remotes[%d]: name and url are required", i)
		}
	}
	return nil
}
