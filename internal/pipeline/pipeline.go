// Package pipeline runs the fixed-order build stages for a configuration.
//
// Every run starts with Initialize (tool version probes and best-effort
// registry registration) and then enters, in this order and only when
// requested, Acquire, Configure, Build and Test. The first failing required
// command halts the pipeline and is returned unchanged, so its exit status can
// become the process exit status.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hashicorp/go-hclog"

	"github.com/goplus/exbuild/internal/cmake"
	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/generator"
	"github.com/goplus/exbuild/internal/pkgmgr"
	"github.com/goplus/exbuild/internal/runner"
)

// Stage is one state of the pipeline.
type Stage int

const (
	Initialize Stage = iota
	Acquire
	Configure
	Build
	Test
)

var stageTitles = [...]string{
	Initialize: "Initializing",
	Acquire:    "Installing Third-parties",
	Configure:  "Configuring Project",
	Build:      "Building Project",
	Test:       "Testing Project",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageTitles) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageTitles[s]
}

// Actions selects the gated stages. Their order is fixed regardless of the
// order flags were given in.
type Actions struct {
	Acquire   bool
	Configure bool
	Build     bool
	Test      bool
}

func (a Actions) any() bool {
	return a.Acquire || a.Configure || a.Build || a.Test
}

// Stages returns Initialize followed by the requested stages in order.
func (a Actions) Stages() []Stage {
	stages := []Stage{Initialize}
	for _, s := range []struct {
		on    bool
		stage Stage
	}{
		{a.Acquire, Acquire},
		{a.Configure, Configure},
		{a.Build, Build},
		{a.Test, Test},
	} {
		if s.on {
			stages = append(stages, s.stage)
		}
	}
	return stages
}

// CompilerEnv provides the environment of a native compiler toolchain.
type CompilerEnv interface {
	Environment(ctx context.Context, arch config.Arch) (map[string]string, error)
}

// Pipeline drives the external tools for one configuration.
type Pipeline struct {
	cfg    config.Configuration
	runner runner.Runner
	pm     pkgmgr.Manager
	gen    generator.Generator
	hostOS string

	compilerEnv CompilerEnv
	env         map[string]string // overlay applied to every command after Initialize

	out    io.Writer
	logger hclog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithOutput sets where stage banners are written.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// WithHostOS sets the runtime.GOOS value of the machine running the
// build. It defaults to runtime.GOOS.
func WithHostOS(hostOS string) Option {
	return func(p *Pipeline) {
		p.hostOS = hostOS
	}
}

// WithCompilerEnv sets the provider used when the generator needs a
// compiler environment for the target OS.
func WithCompilerEnv(ce CompilerEnv) Option {
	return func(p *Pipeline) {
		p.compilerEnv = ce
	}
}

// New creates a Pipeline for cfg running commands through r.
func New(cfg config.Configuration, r runner.Runner, opts ...Option) (*Pipeline, error) {
	pm, err := pkgmgr.For(cfg.PkgMgr)
	if err != nil {
		return nil, err
	}
	gen, err := generator.For(cfg.Generator)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:    cfg,
		runner: r,
		pm:     pm,
		gen:    gen,
		hostOS: runtime.GOOS,
		out:    os.Stdout,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes Initialize and the stages selected by a.
func (p *Pipeline) Run(ctx context.Context, a Actions) error {
	for _, stage := range a.Stages() {
		p.banner(stage)
		p.logger.Info("entering stage", "stage", stage.String())

		var err error
		if stage == Initialize {
			err = p.initialize(ctx, a)
		} else {
			err = p.runStage(ctx, stage)
		}
		if err != nil {
			p.logger.Error("stage failed", "stage", stage.String(), "error", err)
			return err
		}
	}
	return nil
}

func (p *Pipeline) initialize(ctx context.Context, a Actions) error {
	fmt.Fprintf(p.out, "Package manager: %s\n", p.cfg.PkgMgr)
	fmt.Fprintf(p.out, "Target: %s/%s\n", p.cfg.OS, p.cfg.Arch)
	fmt.Fprintf(p.out, "Build type: %s\n", p.cfg.BuildType)
	fmt.Fprintf(p.out, "Generator: %s\n", p.cfg.Generator)
	fmt.Fprintf(p.out, "Source dir: %s\n", p.cfg.SourceDir)
	fmt.Fprintf(p.out, "Build dir: %s\n", p.cfg.BuildDir)
	if p.cfg.ToolchainFile != "" {
		fmt.Fprintf(p.out, "Toolchain file: %s\n", p.cfg.ToolchainFile)
	}

	if err := runner.RunAll(ctx, p.runner, p.logger, p.probes()...); err != nil {
		return err
	}
	if err := runner.RunAll(ctx, p.runner, p.logger, p.pm.Remotes(p.cfg)...); err != nil {
		return err
	}

	if !a.any() || !p.gen.NeedsCompilerEnv(p.cfg.OS, p.hostOS) {
		return nil
	}
	if p.compilerEnv == nil {
		return fmt.Errorf("generator %s needs a compiler environment on %s", p.cfg.Generator, p.cfg.OS)
	}
	env, err := p.compilerEnv.Environment(ctx, p.cfg.Arch)
	if err != nil {
		return fmt.Errorf("compiler environment: %w", err)
	}
	p.env = env
	return nil
}

func (p *Pipeline) probes() []runner.Command {
	var cmds []runner.Command
	cmds = append(cmds, p.pm.Probes()...)
	cmds = append(cmds, cmake.VersionCommand())
	cmds = append(cmds, p.gen.Probes()...)
	return cmds
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage) error {
	if err := os.MkdirAll(p.cfg.BuildDir, 0o755); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	cmd := p.command(stage)
	return p.runner.Run(ctx, cmd.WithEnv(p.env))
}

// command returns the command a gated stage runs. Initialize runs several
// commands and is handled by initialize.
func (p *Pipeline) command(stage Stage) runner.Command {
	switch stage {
	case Acquire:
		return p.pm.Install(p.cfg)
	case Configure:
		c := p.cmake()
		for k, v := range p.pm.Defines(p.cfg) {
			c.Define(k, v)
		}
		return c.ConfigureCommand()
	case Build:
		return p.cmake().BuildCommand()
	case Test:
		return p.cmake().TestCommand()
	}
	panic(fmt.Sprintf("pipeline: no command for %v", stage))
}

func (p *Pipeline) cmake() *cmake.CMake {
	return cmake.New(p.cfg.SourceDir, p.cfg.BuildDir).
		Generator(p.gen.CMakeName()).
		Platform(p.gen.Platform(p.cfg.OS, p.cfg.Arch, p.hostOS)).
		BuildType(string(p.cfg.BuildType)).
		Toolchain(p.cfg.ToolchainFile)
}

func (p *Pipeline) banner(stage Stage) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "**************************************************")
	fmt.Fprintf(p.out, "**** %s\n", stage)
}
