package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brigadehq/brigade/internal/types"
)

func result(cat types.Category, summary types.ChunkSummary) types.ChunkResult {
	return types.ChunkResult{
		Chunk:   types.Chunk{ID: string(cat), Category: cat, Priority: cat.Priority()},
		Summary: summary,
	}
}

func TestSynthesizeAggregation(t *testing.T) {
	results := []types.ChunkResult{
		result(types.CategoryCore, types.ChunkSummary{
			FileCount:      2,
			AverageQuality: 8,
			IssueCounts:    map[string]int{"style": 3, "security": 1},
			Languages:      []string{"python"},
		}),
		result(types.CategoryTests, types.ChunkSummary{
			FileCount:      1,
			AverageQuality: 6,
			IssueCounts:    map[string]int{"style": 2},
			Languages:      []string{"python", "javascript"},
		}),
		// Empty summary: excluded from quality mean, contributes nothing.
		result(types.CategoryDocs, types.ChunkSummary{}),
	}

	analysis := Synthesize(types.RepositorySummary{TotalFiles: 3}, results)

	// Overall quality is the mean of chunk averages, skipping empties.
	assert.InDelta(t, 7.0, analysis.RepositorySummary.OverallQuality, 1e-9)

	// Global histogram is the field-wise sum of every chunk's histogram.
	assert.Equal(t, map[string]int{"style": 5, "security": 1}, analysis.IssueSummary)

	// Languages are the merged, deduplicated union.
	assert.Equal(t, []string{"javascript", "python"}, analysis.RepositorySummary.Languages)

	assert.Len(t, analysis.ChunkDetails, 3)
	assert.Equal(t, 3, analysis.RepositorySummary.TotalFiles)
}

func TestSynthesizeCategoryViewIsLastWriteWins(t *testing.T) {
	first := types.ChunkSummary{FileCount: 2, AverageQuality: 9, Languages: []string{"go"}}
	second := types.ChunkSummary{FileCount: 1, AverageQuality: 3, Languages: []string{"go"}}

	analysis := Synthesize(types.RepositorySummary{}, []types.ChunkResult{
		result(types.CategoryCore, first),
		result(types.CategoryCore, second),
	})

	// The per-category view reflects only the last-collected chunk.
	assert.Equal(t, second, analysis.AnalysisByCategory[types.CategoryCore])
	// The true aggregate still averages both.
	assert.InDelta(t, 6.0, analysis.RepositorySummary.OverallQuality, 1e-9)
}

func TestSynthesizeNoResults(t *testing.T) {
	analysis := Synthesize(types.RepositorySummary{TotalFiles: 0}, nil)

	assert.Zero(t, analysis.RepositorySummary.OverallQuality)
	assert.Zero(t, analysis.RepositorySummary.TotalFiles)
	assert.Empty(t, analysis.IssueSummary)
	// 0 < 6, so the remediation message is present even for an empty repo.
	assert.Contains(t, analysis.Insights, "Code quality needs attention - consider systematic refactoring")
	// No tests chunks at all triggers the missing-tests insight.
	assert.Contains(t, analysis.Insights, "No test files detected - consider adding test coverage")
}

func TestSynthesizeAllChunksEmpty(t *testing.T) {
	analysis := Synthesize(types.RepositorySummary{}, []types.ChunkResult{
		result(types.CategoryCore, types.ChunkSummary{}),
		result(types.CategoryTests, types.ChunkSummary{}),
	})

	assert.Zero(t, analysis.RepositorySummary.OverallQuality)
	assert.Empty(t, analysis.IssueSummary)
}

func TestInsightQualityBands(t *testing.T) {
	tests := []struct {
		quality float64
		want    string
	}{
		{9.1, "Excellent code quality - repository shows strong engineering practices"},
		{8.0, "Excellent code quality - repository shows strong engineering practices"},
		{7.2, "Good code quality with room for targeted improvements"},
		{6.0, "Good code quality with room for targeted improvements"},
		{4.5, "Code quality needs attention - consider systematic refactoring"},
	}

	for _, tt := range tests {
		insights := generateInsights(nil, tt.quality, map[string]int{})
		require.NotEmpty(t, insights, "quality %.1f", tt.quality)
		assert.Equal(t, tt.want, insights[0], "quality %.1f", tt.quality)
	}
}

func TestInsightIssueTriggers(t *testing.T) {
	insights := generateInsights(nil, 7, map[string]int{"security": 6, "performance": 11})
	assert.Contains(t, insights, "Security issues detected - prioritize security review")
	assert.Contains(t, insights, "Performance optimization opportunities identified")

	// At the threshold (not above it) neither fires.
	insights = generateInsights(nil, 7, map[string]int{"security": 5, "performance": 10})
	assert.NotContains(t, insights, "Security issues detected - prioritize security review")
	assert.NotContains(t, insights, "Performance optimization opportunities identified")
}

func TestInsightTestRatio(t *testing.T) {
	lowRatio := []types.ChunkResult{
		result(types.CategoryCore, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
		result(types.CategoryCore, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
		result(types.CategoryCore, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
		result(types.CategoryCore, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
		result(types.CategoryTests, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
	}
	insights := generateInsights(lowRatio, 7, map[string]int{})
	assert.Contains(t, insights, "Low test-to-code ratio - consider expanding test coverage")

	balanced := []types.ChunkResult{
		result(types.CategoryCore, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
		result(types.CategoryTests, types.ChunkSummary{FileCount: 1, AverageQuality: 7}),
	}
	insights = generateInsights(balanced, 7, map[string]int{})
	assert.NotContains(t, insights, "Low test-to-code ratio - consider expanding test coverage")
	assert.NotContains(t, insights, "No test files detected - consider adding test coverage")
}

func TestRecommendations(t *testing.T) {
	recs := generateRecommendations(map[string]int{"security": 1, "style": 21, "complexity": 2}, 5)
	assert.Equal(t, []string{
		"1. Address security vulnerabilities immediately",
		"2. Implement code quality standards and linting",
		"3. Set up automated code formatting",
		"4. Refactor complex functions for better maintainability",
		"5. Set up continuous quality monitoring with brigade",
	}, recs)

	// The generic monitoring recommendation is always present and last.
	recs = generateRecommendations(map[string]int{}, 9)
	assert.Equal(t, []string{"5. Set up continuous quality monitoring with brigade"}, recs)
}
