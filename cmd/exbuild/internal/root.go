package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/env"
	"github.com/goplus/exbuild/internal/logging"
	"github.com/goplus/exbuild/internal/msvc"
	"github.com/goplus/exbuild/internal/pipeline"
	"github.com/goplus/exbuild/internal/pkgmgr"
	"github.com/goplus/exbuild/internal/runner"
)

// Hooks replaced by tests.
var (
	detectHost = env.Detect
	newRunner  = func(stdout, stderr io.Writer) runner.Runner {
		return runner.NewExec(runner.WithStdout(stdout), runner.WithStderr(stderr), runner.WithTrace(stdout))
	}
)

type rootOptions struct {
	actions    pipeline.Actions
	opts       config.Options
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "exbuild",
		Short: "exbuild builds the C++ experiments project",
		Long: `exbuild resolves a build configuration and runs, in this order and only when
requested, third-party installation, CMake configuration, compilation and tests.

Each configuration builds in its own directory, build/<arch>-<build_type>-<generator>-<os>-<pkg_mgr>.
When a tool fails, exbuild exits with that tool's exit status.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, o)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&o.actions.Acquire, "install", false, "install the third-parties")
	f.BoolVar(&o.actions.Configure, "configure", false, "configure the project")
	f.BoolVar(&o.actions.Build, "build", false, "build the project")
	f.BoolVar(&o.actions.Test, "test", false, "test the project")

	f.Var(&o.opts.PkgMgr, "pkg_mgr", "package manager: conan or vcpkg (default conan)")
	f.Var(&o.opts.OS, "os", "target OS: windows, linux or darwin (default host)")
	f.Var(&o.opts.Arch, "arch", "target architecture: x64, x86 or arm64 (default host)")
	f.Var(&o.opts.BuildType, "build_type", "build type: Debug or Release (default Debug)")
	f.Var(&o.opts.Generator, "generator", "generator: default or ninja (default default)")
	f.StringVar(&o.opts.ToolchainFile, "toolchain_file", "", "CMake toolchain file (default depends on the package manager)")
	f.StringVar(&o.opts.SourceDir, "source_dir", "", "project directory (default current directory)")
	f.BoolVar(&o.opts.UseBoostFilesystem, "use_boost_filesystem", false, "use boost filesystem instead of std filesystem")
	f.StringVar(&o.configPath, "config", "", "YAML file with default settings")

	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default $"+logging.LevelEnv+" or warn)")

	cmd.AddCommand(newConfigsCmd())
	return cmd
}

func runRoot(cmd *cobra.Command, o *rootOptions) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := logging.New("exbuild", o.logLevel, stderr)

	opts := o.opts
	if o.configPath != "" {
		f, err := config.LoadFile(o.configPath)
		if err != nil {
			return err
		}
		opts.File = f
	}

	host := detectHost()
	resolver := &config.Resolver{
		Host:      host,
		Toolchain: pkgmgr.DefaultToolchain(host),
		Logger:    logger,
	}
	cfg, err := resolver.Resolve(opts)
	if err != nil {
		return err
	}

	r := newRunner(stdout, stderr)
	p, err := pipeline.New(cfg, r,
		pipeline.WithLogger(logger),
		pipeline.WithOutput(stdout),
		pipeline.WithHostOS(host.OS),
		pipeline.WithCompilerEnv(&msvc.Locator{Runner: r, Getenv: host.Getenv, Logger: logger}),
	)
	if err != nil {
		return err
	}
	return p.Run(cmd.Context(), o.actions)
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main().
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	var exitErr *runner.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(stderr, "exbuild:", err)
	}
	return runner.ExitCode(err)
}
