package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	noOptimize bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "adac [file]",
	Short: "Ada 83 to LLVM IR compiler",
	Long: `adac compiles a single Ada 83 compilation unit to textual LLVM IR.

It runs the full pipeline directly: lexing, recursive-descent parsing,
name and type resolution (including generic instantiation), a small
local optimizer, and code generation with runtime-check insertion for
range, index, null-access, and division-by-zero errors. The output is
.ll text meant to be fed to a real LLVM toolchain alongside the bundled
runtime support functions (see "adac emit-runtime").

Invoking adac with a bare file argument is shorthand for "adac build":

  adac hello.adb
  adac build hello.adb -o hello.ll`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runBuild(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noOptimize, "no-optimize", false, "disable every optimizer pass")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.PersistentFlags().Bool("color", false, "force colored diagnostics regardless of the configured default")

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.ll)")
}

// colorEnabled resolves --no-color/--color against the configured
// default: --no-color always wins, --color always forces color on,
// and otherwise the configuration file's own color_diagnostics value
// applies.
func colorEnabled(cmd *cobra.Command, configDefault bool) bool {
	if noColor {
		return false
	}
	if forced, _ := cmd.Flags().GetBool("color"); forced {
		return true
	}
	return configDefault
}
