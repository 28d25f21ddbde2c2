package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ada/adac/internal/codegen"
	"github.com/go-ada/adac/internal/compiler"
	"github.com/go-ada/adac/internal/config"
	"github.com/go-ada/adac/internal/optimizer"
	"github.com/spf13/cobra"
)

var (
	outputFile   string
	buildVerbose bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile an Ada 83 source file to textual LLVM IR",
	Long: `Compile a single Ada 83 compilation unit to a .ll file.

Examples:
  # Compile to <input>.ll
  adac build hello.adb

  # Compile with a custom output path
  adac build hello.adb -o out.ll

  # Compile with every optimizer pass disabled
  adac build hello.adb --no-optimize`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.ll)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	optCfg := optimizer.DefaultConfig(
		optimizer.WithPass(optimizer.PassConstantFold, cfg.Optimizer.ConstantFold),
		optimizer.WithPass(optimizer.PassAttributeReduction, cfg.Optimizer.AttributeReduction),
		optimizer.WithPass(optimizer.PassRedundantCheckElim, cfg.Optimizer.RedundantCheckElim),
	)
	if noOptimize {
		optCfg = optimizer.DefaultConfig(
			optimizer.WithPass(optimizer.PassConstantFold, false),
			optimizer.WithPass(optimizer.PassAttributeReduction, false),
			optimizer.WithPass(optimizer.PassRedundantCheckElim, false),
		)
	}

	codegenOpts := codegen.Options{
		IntWidth: cfg.Codegen.IntWidth,
		Color:    colorEnabled(cmd, cfg.Codegen.ColorDiagnostics),
	}

	ctx := compiler.New(filename, src, optCfg, codegenOpts)
	ir, err := ctx.Compile()
	if err != nil {
		fmt.Fprint(os.Stderr, ctx.Diagnostics().Format(codegenOpts.Color))
		fmt.Fprintln(os.Stderr)
		return err
	}

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".ll"
		} else {
			outFile = filename + ".ll"
		}
	}

	if err := os.WriteFile(outFile, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outFile, len(ir))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
