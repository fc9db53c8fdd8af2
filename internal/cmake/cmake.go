// Package cmake assembles the cmake/ctest configure, build and test commands.
package cmake

import (
	"sort"

	"github.com/goplus/exbuild/internal/runner"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake describes one CMake build tree.
type CMake struct {
	sourceDir string
	buildDir  string
	generator string
	platform  string
	buildType string
	toolchain string
	defines   map[string]defineValue
}

// New returns a CMake for the given source and build directories.
func New(sourceDir, buildDir string) *CMake {
	return &CMake{
		sourceDir: sourceDir,
		buildDir:  buildDir,
		defines:   make(map[string]defineValue),
	}
}

// Generator sets the CMake generator (e.g. "Ninja"). "" keeps CMake's default.
func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

// Platform sets the generator platform passed with "-A" (e.g. "Win32").
// "" leaves it to the generator.
func (c *CMake) Platform(name string) *CMake {
	c.platform = name
	return c
}

// BuildType sets CMAKE_BUILD_TYPE and the multi-config --config/-C value.
func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

// Toolchain sets CMAKE_TOOLCHAIN_FILE. "" leaves it unset.
func (c *CMake) Toolchain(path string) *CMake {
	c.toolchain = path
	return c
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) *CMake {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) *CMake {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
	return c
}

// ConfigureCommand returns "cmake -S <source> -B <build>" with all configured
// options. Extra args are appended at the end.
func (c *CMake) ConfigureCommand(args ...string) runner.Command {
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.platform != "" {
		cmakeArgs = append(cmakeArgs, "-A", c.platform)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return runner.Command{Name: "cmake", Args: cmakeArgs, Dir: c.buildDir}
}

// BuildCommand returns "cmake --build <build>" with optional extra arguments.
func (c *CMake) BuildCommand(args ...string) runner.Command {
	cmdArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	cmdArgs = append(cmdArgs, args...)
	return runner.Command{Name: "cmake", Args: cmdArgs, Dir: c.buildDir}
}

// TestCommand returns the ctest invocation run inside the build directory.
func (c *CMake) TestCommand(args ...string) runner.Command {
	var cmdArgs []string
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "-C", c.buildType)
	}
	cmdArgs = append(cmdArgs, "--output-on-failure")
	cmdArgs = append(cmdArgs, args...)
	return runner.Command{Name: "ctest", Args: cmdArgs, Dir: c.buildDir}
}

// VersionCommand returns the "cmake --version" probe.
func VersionCommand() runner.Command {
	return runner.Command{Name: "cmake", Args: []string{"--version"}}
}

func (c *CMake) definesArgs() []string {
	defines := make(map[string]defineValue, len(c.defines)+2)
	for k, v := range c.defines {
		defines[k] = v
	}
	if c.toolchain != "" {
		defines["CMAKE_TOOLCHAIN_FILE"] = defineValue{value: c.toolchain, typeName: "FILEPATH"}
	}
	if c.buildType != "" {
		defines["CMAKE_BUILD_TYPE"] = defineValue{value: c.buildType, typeName: "STRING"}
	}
	if len(defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}
