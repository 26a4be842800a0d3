package analyzer

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/brigadehq/brigade/internal/executor"
	"github.com/brigadehq/brigade/internal/types"
)

// Heuristic thresholds.
const (
	maxLineLength   = 120
	longFileLines   = 500
	maxNestingDepth = 5
)

// Severity deductions for quality scoring: start at 10, subtract per
// issue, floor at 0.
const (
	deductHigh   = 3
	deductMedium = 2
	deductLow    = 1
)

var (
	// Hardcoded credential assignments, e.g. password = "hunter2".
	credentialPattern = regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key|token)\s*[:=]\s*["'][^"']+["']`)

	// Dynamic code execution.
	dynamicExecPattern = regexp.MustCompile(`\b(eval|exec)\s*\(`)

	todoPattern = regexp.MustCompile(`\b(TODO|FIXME|XXX)\b`)
)

// HeuristicAnalyzer scores files from content signals alone: no
// subprocess, no network. It is the default analyzer.
type HeuristicAnalyzer struct{}

var _ executor.FileAnalyzer = (*HeuristicAnalyzer)(nil)

// NewHeuristicAnalyzer creates a heuristic file analyzer.
func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Analyze reads the file and derives a quality score and issue list.
func (a *HeuristicAnalyzer) Analyze(ctx context.Context, path string) (*types.FileAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	lines := strings.Split(string(content), "\n")
	issues := a.inspect(lines)

	return &types.FileAnalysis{
		Path:         path,
		QualityScore: scoreFromIssues(issues),
		Issues:       issues,
		Language:     DetectLanguage(path),
	}, nil
}

// inspect derives issues from line-level signals.
func (a *HeuristicAnalyzer) inspect(lines []string) []types.Issue {
	issues := []types.Issue{}
	maxDepth := 0

	for i, line := range lines {
		lineNo := i + 1

		if len(line) > maxLineLength {
			issues = append(issues, types.Issue{
				Type:        "style",
				Severity:    "low",
				Line:        lineNo,
				Description: fmt.Sprintf("line exceeds %d characters", maxLineLength),
			})
		}

		if todoPattern.MatchString(line) {
			issues = append(issues, types.Issue{
				Type:        "maintainability",
				Severity:    "low",
				Line:        lineNo,
				Description: "unresolved TODO/FIXME marker",
			})
		}

		if credentialPattern.MatchString(line) {
			issues = append(issues, types.Issue{
				Type:        "security",
				Severity:    "high",
				Line:        lineNo,
				Description: "possible hardcoded credential",
			})
		}

		if dynamicExecPattern.MatchString(line) {
			issues = append(issues, types.Issue{
				Type:        "security",
				Severity:    "medium",
				Line:        lineNo,
				Description: "dynamic code execution",
			})
		}

		if depth := indentDepth(line); depth > maxDepth {
			maxDepth = depth
		}
	}

	if maxDepth > maxNestingDepth {
		issues = append(issues, types.Issue{
			Type:        "complexity",
			Severity:    "medium",
			Description: fmt.Sprintf("nesting depth reaches %d levels", maxDepth),
		})
	}

	if len(lines) > longFileLines {
		issues = append(issues, types.Issue{
			Type:        "complexity",
			Severity:    "medium",
			Description: fmt.Sprintf("file is %d lines long", len(lines)),
		})
	}

	return issues
}

// indentDepth approximates nesting from leading whitespace, counting
// four spaces or one tab per level.
func indentDepth(line string) int {
	spaces, tabs := 0, 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			tabs++
		default:
			return tabs + spaces/4
		}
	}
	return 0 // blank or whitespace-only line
}

// scoreFromIssues computes the 0-10 quality score: 10 minus a deduction
// per issue severity (high 3, medium 2, anything else 1), floored at 0.
func scoreFromIssues(issues []types.Issue) float64 {
	score := 10
	for _, issue := range issues {
		switch issue.Severity {
		case "high":
			score -= deductHigh
		case "medium":
			score -= deductMedium
		default:
			score -= deductLow
		}
	}
	if score < 0 {
		score = 0
	}
	return float64(score)
}
