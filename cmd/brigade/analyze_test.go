package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brigadehq/brigade/internal/analyzer"
	"github.com/brigadehq/brigade/internal/config"
)

func TestLoadAnalyzeConfigDefaults(t *testing.T) {
	cmd := analyzeCmd
	require.NoError(t, cmd.Flags().Set("chunk-size", "0"))
	cmd.Flags().Lookup("chunk-size").Changed = false
	cmd.Flags().Lookup("workers").Changed = false
	cmd.Flags().Lookup("analyzer").Changed = false
	analyzeConfigPath = ""

	cfg, err := loadAnalyzeConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadAnalyzeConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brigade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 7\nchunk_size_budget: 1000\n"), 0644))

	cmd := analyzeCmd
	analyzeConfigPath = path
	require.NoError(t, cmd.Flags().Set("workers", "2"))
	t.Cleanup(func() {
		analyzeConfigPath = ""
		cmd.Flags().Lookup("workers").Changed = false
	})

	cfg, err := loadAnalyzeConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers, "flag wins over file")
	assert.Equal(t, int64(1000), cfg.ChunkSizeBudget, "file wins over default")
}

func TestLoadAnalyzeConfigRejectsInvalidFlag(t *testing.T) {
	cmd := analyzeCmd
	analyzeConfigPath = ""
	require.NoError(t, cmd.Flags().Set("analyzer", "psychic"))
	t.Cleanup(func() { cmd.Flags().Lookup("analyzer").Changed = false })

	_, err := loadAnalyzeConfig(cmd)
	assert.Error(t, err)
}

func TestBuildAnalyzer(t *testing.T) {
	heuristic, err := buildAnalyzer(&config.Config{Analyzer: config.AnalyzerHeuristic})
	require.NoError(t, err)
	assert.IsType(t, &analyzer.HeuristicAnalyzer{}, heuristic)

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	ai, err := buildAnalyzer(&config.Config{Analyzer: config.AnalyzerAI})
	require.NoError(t, err)
	assert.IsType(t, &analyzer.AIAnalyzer{}, ai)

	_, err = buildAnalyzer(&config.Config{Analyzer: "psychic"})
	assert.Error(t, err)
}
