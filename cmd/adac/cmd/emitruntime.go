package cmd

import (
	"fmt"
	"os"

	"github.com/go-ada/adac/internal/config"
	"github.com/go-ada/adac/internal/runtime"
	"github.com/spf13/cobra"
)

var emitRuntimeCmd = &cobra.Command{
	Use:   "emit-runtime [path]",
	Short: "Write the bundled C runtime support file",
	Long: `Write the runtime support functions that code emitted by
"adac build" expects to be linked against: secondary-stack allocation,
the setjmp/longjmp exception bridge, range checking, integer
exponentiation, and the predefined 'Image/'Value conversions.

With no path argument, the file is written to the path configured in
adac's own config (see "adac config"), ada_runtime.c by default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmitRuntime,
}

func init() {
	rootCmd.AddCommand(emitRuntimeCmd)
}

func runEmitRuntime(_ *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		path = cfg.Runtime.EmitPath
	}

	if err := runtime.WriteTo(path); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
