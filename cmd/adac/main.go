// Command adac compiles a single Ada 83 compilation unit to textual
// LLVM IR. Run "adac --help" for usage.
package main

import (
	"fmt"
	"os"

	"github.com/go-ada/adac/cmd/adac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
