package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brigadehq/brigade/internal/analyzer"
	"github.com/brigadehq/brigade/internal/config"
	"github.com/brigadehq/brigade/internal/executor"
	"github.com/brigadehq/brigade/internal/pipeline"
	"github.com/brigadehq/brigade/internal/report"
)

var (
	analyzeChunkSize  int64
	analyzeMaxFiles   int
	analyzeWorkers    int
	analyzeAnalyzer   string
	analyzeConfigPath string
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a repository's code quality",
	Long: `Analyze a repository's code quality and print a report.

The repository is walked once, files are categorized (core, tests,
config, docs, build, other) and grouped into chunks bounded by byte
size and file count. Chunks are analyzed in priority order on a fixed
worker pool; a failed chunk is dropped from the report, not fatal.

Examples:
  brigade analyze                          # Analyze the current directory
  brigade analyze ./myrepo                 # Analyze a specific path
  brigade analyze --analyzer=ai            # Use the AI analyzer
  brigade analyze --chunk-size=100000      # Raise the chunk byte budget
  brigade analyze --json                   # Emit machine-readable JSON`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		cfg, err := loadAnalyzeConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fileAnalyzer, err := buildAnalyzer(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		pipe, err := pipeline.New(fileAnalyzer, &pipeline.Config{
			ChunkSizeBudget: cfg.ChunkSizeBudget,
			ChunkFileBudget: cfg.ChunkFileBudget,
			Workers:         cfg.Workers,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		analysis, err := pipe.Run(ctx, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if analyzeJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(analysis); err != nil {
				fmt.Fprintf(os.Stderr, "Error: encoding analysis: %v\n", err)
				os.Exit(1)
			}
			return
		}

		report.Render(os.Stdout, analysis)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Int64Var(&analyzeChunkSize, "chunk-size", 0, "Chunk byte-size budget (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMaxFiles, "max-files", 0, "Chunk file-count budget (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Worker pool size (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeAnalyzer, "analyzer", "", "File analyzer: heuristic or ai (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to a YAML config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the analysis as JSON instead of a report")
}

// loadAnalyzeConfig merges the config file (or defaults) with any flags
// the user set. Flags win.
func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if analyzeConfigPath != "" {
		loaded, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSizeBudget = analyzeChunkSize
	}
	if cmd.Flags().Changed("max-files") {
		cfg.ChunkFileBudget = analyzeMaxFiles
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
	if cmd.Flags().Changed("analyzer") {
		cfg.Analyzer = analyzeAnalyzer
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildAnalyzer(cfg *config.Config) (executor.FileAnalyzer, error) {
	switch cfg.Analyzer {
	case config.AnalyzerHeuristic:
		return analyzer.NewHeuristicAnalyzer(), nil
	case config.AnalyzerAI:
		return analyzer.NewAIAnalyzer(&analyzer.AIConfig{Model: cfg.Model})
	default:
		return nil, fmt.Errorf("unknown analyzer %q", cfg.Analyzer)
	}
}
