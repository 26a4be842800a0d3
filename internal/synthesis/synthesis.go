// Package synthesis reduces chunk results into the final repository
// analysis: overall quality, a global issue histogram, per-category
// summaries, qualitative insights, and ranked recommendations.
package synthesis

import (
	"sort"

	"github.com/brigadehq/brigade/internal/types"
)

// Fixed thresholds for insight generation.
const (
	qualityExcellent   = 8
	qualityGood        = 6
	securityInsightMin = 5
	perfInsightMin     = 10
	testRatioMin       = 0.3
	styleRecommendMin  = 20
)

// Synthesize builds the FinalAnalysis from the repository summary
// scaffold and the collected chunk results. It assumes nothing about
// the order of results, which arrive in completion order.
func Synthesize(summary types.RepositorySummary, results []types.ChunkResult) *types.FinalAnalysis {
	var qualityScores []float64
	allIssues := map[string]int{}
	languageSet := map[string]struct{}{}

	// analysis_by_category is last-write-wins: when a category spans
	// several chunks, the view reflects whichever finished last. The
	// issue histogram and repository summary remain true aggregates.
	byCategory := map[types.Category]types.ChunkSummary{}

	for _, result := range results {
		if !result.Summary.Empty() {
			qualityScores = append(qualityScores, result.Summary.AverageQuality)
		}
		for issueType, count := range result.Summary.IssueCounts {
			allIssues[issueType] += count
		}
		for _, lang := range result.Summary.Languages {
			languageSet[lang] = struct{}{}
		}
		byCategory[result.Chunk.Category] = result.Summary
	}

	overallQuality := 0.0
	if len(qualityScores) > 0 {
		var total float64
		for _, score := range qualityScores {
			total += score
		}
		overallQuality = total / float64(len(qualityScores))
	}

	languages := make([]string, 0, len(languageSet))
	for lang := range languageSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	summary.Languages = languages
	summary.OverallQuality = overallQuality

	return &types.FinalAnalysis{
		RepositorySummary:  summary,
		AnalysisByCategory: byCategory,
		IssueSummary:       allIssues,
		Insights:           generateInsights(results, overallQuality, allIssues),
		Recommendations:    generateRecommendations(allIssues, overallQuality),
		ChunkDetails:       results,
	}
}

// generateInsights derives qualitative observations from fixed
// thresholds on overall quality, issue counts, and test coverage shape.
func generateInsights(results []types.ChunkResult, overallQuality float64, allIssues map[string]int) []string {
	var insights []string

	switch {
	case overallQuality >= qualityExcellent:
		insights = append(insights, "Excellent code quality - repository shows strong engineering practices")
	case overallQuality >= qualityGood:
		insights = append(insights, "Good code quality with room for targeted improvements")
	default:
		insights = append(insights, "Code quality needs attention - consider systematic refactoring")
	}

	if allIssues["security"] > securityInsightMin {
		insights = append(insights, "Security issues detected - prioritize security review")
	}
	if allIssues["performance"] > perfInsightMin {
		insights = append(insights, "Performance optimization opportunities identified")
	}

	coreChunks, testChunks := 0, 0
	for _, result := range results {
		switch result.Chunk.Category {
		case types.CategoryCore:
			coreChunks++
		case types.CategoryTests:
			testChunks++
		}
	}

	if testChunks == 0 {
		insights = append(insights, "No test files detected - consider adding test coverage")
	} else if coreChunks > 0 {
		if float64(testChunks)/float64(coreChunks) < testRatioMin {
			insights = append(insights, "Low test-to-code ratio - consider expanding test coverage")
		}
	}

	return insights
}

// generateRecommendations produces the fixed, numbered recommendation
// list. The labels are stable regardless of which rules fire; the
// generic monitoring recommendation is always last.
func generateRecommendations(allIssues map[string]int, overallQuality float64) []string {
	var recommendations []string

	if allIssues["security"] > 0 {
		recommendations = append(recommendations, "1. Address security vulnerabilities immediately")
	}
	if overallQuality < qualityGood {
		recommendations = append(recommendations, "2. Implement code quality standards and linting")
	}
	if allIssues["style"] > styleRecommendMin {
		recommendations = append(recommendations, "3. Set up automated code formatting")
	}
	if allIssues["complexity"] > 0 {
		recommendations = append(recommendations, "4. Refactor complex functions for better maintainability")
	}

	recommendations = append(recommendations, "5. Set up continuous quality monitoring with brigade")

	return recommendations
}
