// Package executor runs chunk analysis across a bounded worker pool.
// Chunks are submitted in priority order and completed in any order;
// a file's failure never aborts its chunk, and a chunk's failure never
// aborts its siblings.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/brigadehq/brigade/internal/types"
)

// DefaultWorkers is the default number of concurrent chunk workers.
const DefaultWorkers = 3

// FileAnalyzer is the external per-file analysis capability consumed by
// the pool. It may be slow and may fail; the pool treats it as opaque.
type FileAnalyzer interface {
	Analyze(ctx context.Context, path string) (*types.FileAnalysis, error)
}

// AnalyzerFunc adapts a plain function to the FileAnalyzer interface.
type AnalyzerFunc func(ctx context.Context, path string) (*types.FileAnalysis, error)

// Analyze implements FileAnalyzer.
func (f AnalyzerFunc) Analyze(ctx context.Context, path string) (*types.FileAnalysis, error) {
	return f(ctx, path)
}

// Pool executes chunks across a fixed number of workers. Each worker
// processes one chunk fully, file by file, before taking the next.
type Pool struct {
	analyzer FileAnalyzer
	workers  int

	// root is joined with each chunk's relative file paths when
	// invoking the analyzer.
	root string
}

// NewPool creates a chunk execution pool. The analyzer is required;
// a non-positive worker count falls back to DefaultWorkers.
func NewPool(analyzer FileAnalyzer, workers int, root string) (*Pool, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("file analyzer is required")
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{analyzer: analyzer, workers: workers, root: root}, nil
}

// Run analyzes every chunk and returns one ChunkResult per chunk that
// was analyzable, in completion order. Chunks are submitted in
// ascending priority-rank order; execution is concurrent, so a
// lower-priority chunk may finish (or even start) before a
// higher-priority one completes. Failed chunks are logged and omitted;
// they are not retried.
func (p *Pool) Run(ctx context.Context, chunks []types.Chunk) []types.ChunkResult {
	if len(chunks) == 0 {
		return nil
	}

	// Stable sort keeps each category's chunks in build order.
	ordered := make([]types.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	queue := make(chan types.Chunk)
	results := make(chan types.ChunkResult, len(ordered))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range queue {
				result, err := p.analyzeChunk(ctx, chunk)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: analyzing %s chunk %s: %v\n",
						chunk.Category, chunk.ID, err)
					continue
				}
				results <- *result
			}
		}()
	}

	for _, chunk := range ordered {
		queue <- chunk
	}
	close(queue)
	wg.Wait()
	close(results)

	collected := make([]types.ChunkResult, 0, len(ordered))
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

// analyzeChunk analyzes every file in a chunk sequentially. Per-file
// failures are logged and the file is omitted from the result; only a
// panic in the analyzer fails the chunk as a whole.
func (p *Pool) analyzeChunk(ctx context.Context, chunk types.Chunk) (result *types.ChunkResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("analyzer panicked: %v", r)
		}
	}()

	files := make([]types.FileAnalysis, 0, len(chunk.Files))
	for _, relPath := range chunk.Files {
		analysis, err := p.analyzer.Analyze(ctx, filepath.Join(p.root, filepath.FromSlash(relPath)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: analyzing file %s: %v\n", relPath, err)
			continue
		}
		fa := *analysis
		fa.Path = relPath
		files = append(files, fa)
	}

	return &types.ChunkResult{
		Chunk:   chunk,
		Files:   files,
		Summary: summarizeChunk(files),
	}, nil
}

// summarizeChunk derives a chunk's summary from its successfully
// analyzed files. An empty file list yields the zero summary.
func summarizeChunk(files []types.FileAnalysis) types.ChunkSummary {
	if len(files) == 0 {
		return types.ChunkSummary{}
	}

	var totalQuality float64
	issueCounts := map[string]int{}
	languageSet := map[string]struct{}{}

	for _, f := range files {
		totalQuality += f.QualityScore
		for _, issue := range f.Issues {
			issueType := issue.Type
			if issueType == "" {
				issueType = "unknown"
			}
			issueCounts[issueType]++
		}
		// A failed detection contributes the empty language; that is
		// recorded, not treated as an error.
		languageSet[f.Language] = struct{}{}
	}

	languages := make([]string, 0, len(languageSet))
	for lang := range languageSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return types.ChunkSummary{
		FileCount:      len(files),
		AverageQuality: totalQuality / float64(len(files)),
		IssueCounts:    issueCounts,
		Languages:      languages,
	}
}
