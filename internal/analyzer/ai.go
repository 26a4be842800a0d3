package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/brigadehq/brigade/internal/executor"
	"github.com/brigadehq/brigade/internal/types"
)

// DefaultModel is the model used when no override is configured.
// BRIGADE_MODEL takes precedence over the config value.
const DefaultModel = "claude-3-5-haiku-20241022"

const (
	defaultMaxConcurrentCalls = 4
	defaultRequestsPerSecond  = 2
	maxResponseTokens         = 2048
)

// codeFenceRegex strips a surrounding ```json ... ``` fence from model
// output before JSON decoding.
var codeFenceRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?```\\s*$")

// AIConfig configures the AI-backed file analyzer.
type AIConfig struct {
	// APIKey for Anthropic; falls back to ANTHROPIC_API_KEY.
	APIKey string

	// Model override; falls back to BRIGADE_MODEL, then DefaultModel.
	Model string

	// MaxConcurrentCalls caps in-flight API requests.
	MaxConcurrentCalls int

	// RequestsPerSecond limits the request rate.
	RequestsPerSecond float64
}

// AIAnalyzer scores files by asking an Anthropic model for a structured
// quality assessment. Calls are concurrency-capped and rate-limited;
// any API or decoding failure is returned as that file's error and
// never aborts sibling work.
type AIAnalyzer struct {
	client  *anthropic.Client
	model   string
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

var _ executor.FileAnalyzer = (*AIAnalyzer)(nil)

// NewAIAnalyzer creates an AI-backed file analyzer.
func NewAIAnalyzer(cfg *AIConfig) (*AIAnalyzer, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	model := cfg.Model
	if env := os.Getenv("BRIGADE_MODEL"); env != "" {
		model = env
	}
	if model == "" {
		model = DefaultModel
	}

	maxCalls := cfg.MaxConcurrentCalls
	if maxCalls <= 0 {
		maxCalls = defaultMaxConcurrentCalls
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AIAnalyzer{
		client:  &client,
		model:   model,
		sem:     semaphore.NewWeighted(int64(maxCalls)),
		limiter: rate.NewLimiter(rate.Limit(rps), maxCalls),
	}, nil
}

// aiAssessment is the JSON shape the model is asked to produce.
type aiAssessment struct {
	QualityScore float64       `json:"quality_score"`
	Issues       []types.Issue `json:"issues"`
	Language     string        `json:"language"`
}

// Analyze sends the file content to the model and decodes its
// structured assessment.
func (a *AIAnalyzer) Analyze(ctx context.Context, path string) (*types.FileAnalysis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if err := a.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquiring analysis slot: %w", err)
	}
	defer a.sem.Release(1)

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	response, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxResponseTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(path, string(content)))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	assessment, err := decodeAssessment(text.String())
	if err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}

	language := assessment.Language
	if language == "" {
		language = DetectLanguage(path)
	}

	return &types.FileAnalysis{
		Path:         path,
		QualityScore: clampScore(assessment.QualityScore),
		Issues:       assessment.Issues,
		Language:     language,
	}, nil
}

func buildPrompt(path, content string) string {
	return fmt.Sprintf(`You are a code quality reviewer. Assess the file below.

Respond with ONLY a JSON object of this exact shape:
{"quality_score": <number 0-10>, "issues": [{"type": "<security|performance|style|complexity|maintainability>", "severity": "<high|medium|low>", "line": <number>, "description": "<short description>"}], "language": "<lowercase language name>"}

File: %s

%s`, path, content)
}

// decodeAssessment parses the model output, stripping a code fence if
// the model wrapped the JSON in one.
func decodeAssessment(text string) (*aiAssessment, error) {
	trimmed := strings.TrimSpace(text)
	if m := codeFenceRegex.FindStringSubmatch(trimmed); m != nil {
		trimmed = strings.TrimSpace(m[1])
	}

	var assessment aiAssessment
	if err := json.Unmarshal([]byte(trimmed), &assessment); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &assessment, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
