package internal

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goplus/exbuild/internal/config"
)

func newConfigsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List every supported configuration and its build directory",
		Long: `Configs prints the build directory of every supported combination of
architecture, build type, generator, OS and package manager.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := config.FullMatrix()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s (%d)\n", m.Keys(), m.CombinationCount())
			for _, combo := range m.Combinations() {
				fmt.Fprintln(out, filepath.Join("build", combo))
			}
			return nil
		},
	}
}
