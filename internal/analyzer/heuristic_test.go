package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brigadehq/brigade/internal/types"
)

func analyzeContent(t *testing.T, name, content string) *types.FileAnalysis {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := NewHeuristicAnalyzer().Analyze(context.Background(), path)
	require.NoError(t, err)
	return result
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "python", DetectLanguage("src/main.py"))
	assert.Equal(t, "javascript", DetectLanguage("app.js"))
	assert.Equal(t, "go", DetectLanguage("cmd/main.go"))
	assert.Equal(t, "cpp", DetectLanguage("lib/impl.CC"))
	// Unrecognized extensions fail detection without error.
	assert.Equal(t, "", DetectLanguage("notes.txt"))
	assert.Equal(t, "", DetectLanguage("LICENSE"))
}

func TestAnalyzeCleanFile(t *testing.T) {
	result := analyzeContent(t, "clean.py", "def add(a, b):\n    return a + b\n")

	assert.Equal(t, 10.0, result.QualityScore)
	assert.Empty(t, result.Issues)
	assert.Equal(t, "python", result.Language)
}

func TestAnalyzeHardcodedCredential(t *testing.T) {
	result := analyzeContent(t, "settings.py", `password = "hunter2"`+"\n")

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "security", result.Issues[0].Type)
	assert.Equal(t, "high", result.Issues[0].Severity)
	assert.Equal(t, 1, result.Issues[0].Line)
	assert.Equal(t, 7.0, result.QualityScore)
}

func TestAnalyzeDynamicExec(t *testing.T) {
	result := analyzeContent(t, "danger.py", "eval(user_input)\n")

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "security", result.Issues[0].Type)
	assert.Equal(t, "medium", result.Issues[0].Severity)
}

func TestAnalyzeLongLineAndTodo(t *testing.T) {
	content := strings.Repeat("x", 130) + "\n# TODO: fix this\n"
	result := analyzeContent(t, "messy.py", content)

	typesSeen := map[string]bool{}
	for _, issue := range result.Issues {
		typesSeen[issue.Type] = true
	}
	assert.True(t, typesSeen["style"])
	assert.True(t, typesSeen["maintainability"])
	// Two low-severity issues: 10 - 1 - 1.
	assert.Equal(t, 8.0, result.QualityScore)
}

func TestAnalyzeDeepNesting(t *testing.T) {
	var b strings.Builder
	b.WriteString("def f():\n")
	for depth := 1; depth <= 7; depth++ {
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString("if x:\n")
	}
	result := analyzeContent(t, "nested.py", b.String())

	require.NotEmpty(t, result.Issues)
	assert.Equal(t, "complexity", result.Issues[0].Type)
}

func TestAnalyzeLongFile(t *testing.T) {
	result := analyzeContent(t, "big.py", strings.Repeat("x = 1\n", 600))

	found := false
	for _, issue := range result.Issues {
		if issue.Type == "complexity" {
			found = true
		}
	}
	assert.True(t, found, "long file should raise a complexity issue")
}

func TestScoreFromIssues(t *testing.T) {
	assert.Equal(t, 10.0, scoreFromIssues(nil))

	// The original scoring rule: 10 - 3 - 2 - 1 = 4.
	issues := []types.Issue{
		{Severity: "high"},
		{Severity: "medium"},
		{Severity: "low"},
	}
	assert.Equal(t, 4.0, scoreFromIssues(issues))

	// Score floors at zero.
	many := make([]types.Issue, 10)
	for i := range many {
		many[i] = types.Issue{Severity: "high"}
	}
	assert.Equal(t, 0.0, scoreFromIssues(many))
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := NewHeuristicAnalyzer().Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
	assert.Error(t, err)
}

func TestDecodeAssessment(t *testing.T) {
	raw := `{"quality_score": 7.5, "issues": [{"type": "style", "severity": "low"}], "language": "python"}`

	tests := []struct {
		name string
		text string
	}{
		{"bare JSON", raw},
		{"fenced", "```json\n" + raw + "\n```"},
		{"fenced without language", "```\n" + raw + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessment, err := decodeAssessment(tt.text)
			require.NoError(t, err)
			assert.Equal(t, 7.5, assessment.QualityScore)
			assert.Equal(t, "python", assessment.Language)
			require.Len(t, assessment.Issues, 1)
		})
	}

	_, err := decodeAssessment("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-3))
	assert.Equal(t, 10.0, clampScore(42))
	assert.Equal(t, 6.5, clampScore(6.5))
}
