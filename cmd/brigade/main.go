// brigade analyzes whole repositories for code quality under a bounded
// work budget.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brigade",
	Short: "Bounded-budget repository code quality analysis",
	Long: `brigade walks a repository, groups files into size-bounded chunks by
category, analyzes the chunks on a bounded worker pool, and synthesizes
a repository-wide quality report.

Per-file and per-chunk failures degrade the report instead of failing
the run; the only hard failure is an unreadable repository root.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
