// Package report renders a FinalAnalysis as a human-readable,
// colorized text report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/brigadehq/brigade/internal/types"
)

// Render writes the full analysis report to w.
func Render(w io.Writer, analysis *types.FinalAnalysis) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	quality := analysis.RepositorySummary.OverallQuality
	qualityColor := red
	switch {
	case quality >= 8:
		qualityColor = green
	case quality >= 6:
		qualityColor = yellow
	}

	fmt.Fprintln(w, bold("Repository Analysis"))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total files:     %d\n", analysis.RepositorySummary.TotalFiles)
	fmt.Fprintf(w, "Overall quality: %s\n", qualityColor(fmt.Sprintf("%.1f/10", quality)))
	if langs := nonEmpty(analysis.RepositorySummary.Languages); len(langs) > 0 {
		fmt.Fprintf(w, "Languages:       %s\n", strings.Join(langs, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", bold("By category"))
	for _, cat := range types.CategoryOrder {
		summary, ok := analysis.AnalysisByCategory[cat]
		if !ok {
			continue
		}
		if summary.Empty() {
			fmt.Fprintf(w, "  %-8s no analyzable files\n", cat)
			continue
		}
		fmt.Fprintf(w, "  %-8s %d files, quality %.1f\n", cat, summary.FileCount, summary.AverageQuality)
	}

	if len(analysis.IssueSummary) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Issues"))
		for _, entry := range sortedByCount(analysis.IssueSummary) {
			fmt.Fprintf(w, "  %-16s %d\n", entry.issueType, entry.count)
		}
	}

	if len(analysis.Insights) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Insights"))
		for _, insight := range analysis.Insights {
			fmt.Fprintf(w, "  %s %s\n", cyan("*"), insight)
		}
	}

	if len(analysis.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Recommendations"))
		for _, rec := range analysis.Recommendations {
			fmt.Fprintf(w, "  %s\n", rec)
		}
	}
}

type issueCount struct {
	issueType string
	count     int
}

// sortedByCount orders the histogram by descending count, then by type
// name for a stable report.
func sortedByCount(histogram map[string]int) []issueCount {
	entries := make([]issueCount, 0, len(histogram))
	for issueType, count := range histogram {
		entries = append(entries, issueCount{issueType, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].issueType < entries[j].issueType
	})
	return entries
}

// nonEmpty drops the empty-language marker from a display list.
func nonEmpty(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		if lang != "" {
			out = append(out, lang)
		}
	}
	return out
}
