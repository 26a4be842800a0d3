// Package types defines the shared data model for the brigade analysis
// pipeline: discovered files, chunks, per-file and per-chunk analysis
// results, and the final repository-wide report.
package types

// Category is one of the six fixed buckets every discovered file is
// sorted into before chunking.
type Category string

const (
	CategoryCore   Category = "core"
	CategoryTests  Category = "tests"
	CategoryConfig Category = "config"
	CategoryDocs   Category = "docs"
	CategoryBuild  Category = "build"
	CategoryOther  Category = "other"
)

// CategoryOrder is the fixed priority order for chunk submission.
// Index+1 is the category's priority rank (1 = highest).
var CategoryOrder = []Category{
	CategoryCore,
	CategoryTests,
	CategoryConfig,
	CategoryDocs,
	CategoryBuild,
	CategoryOther,
}

// Priority returns the category's fixed priority rank (1 = highest).
// Unknown categories rank last.
func (c Category) Priority() int {
	for i, cat := range CategoryOrder {
		if cat == c {
			return i + 1
		}
	}
	return len(CategoryOrder) + 1
}

// FileEntry is a discovered file: its path relative to the repository
// root plus the byte size recorded at discovery time. Entries are
// immutable once created.
type FileEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Chunk is a size/count-bounded, single-category group of files
// submitted to the executor as one analysis unit. Chunks are created
// once by the chunk builder and read-only afterward.
type Chunk struct {
	ID        string   `json:"id"`
	Category  Category `json:"category"`
	Files     []string `json:"files"`
	SizeBytes int64    `json:"size_bytes"`
	Priority  int      `json:"priority"`
}

// Issue is a single finding reported by a file analyzer. Type is
// open-ended ("security", "style", "complexity", ...); an empty Type is
// bucketed as "unknown" during summarization.
type Issue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity,omitempty"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description,omitempty"`
}

// FileAnalysis is the output of the file-analyzer capability for a
// single file. QualityScore is on a 0-10 scale. Language is empty when
// detection failed; that is not an error.
type FileAnalysis struct {
	Path         string  `json:"path"`
	QualityScore float64 `json:"quality_score"`
	Issues       []Issue `json:"issues"`
	Language     string  `json:"language"`
}

// ChunkSummary is the derived summary of one chunk's successfully
// analyzed files. A chunk with zero successful files has the zero
// value (FileCount == 0).
type ChunkSummary struct {
	FileCount      int            `json:"file_count"`
	AverageQuality float64        `json:"average_quality"`
	IssueCounts    map[string]int `json:"issue_summary"`
	Languages      []string       `json:"languages"`
}

// Empty reports whether the summary covers no successfully analyzed files.
func (s ChunkSummary) Empty() bool {
	return s.FileCount == 0
}

// ChunkResult is the output of analyzing one chunk. It is produced by
// the executor, consumed only by the synthesizer, and never mutated
// after creation.
type ChunkResult struct {
	Chunk   Chunk          `json:"chunk_info"`
	Files   []FileAnalysis `json:"files"`
	Summary ChunkSummary   `json:"summary"`
}

// Structure describes the repository's category/file-count shape.
// Extensions is a histogram keyed by lowercase file extension.
type Structure struct {
	Categories map[Category]int `json:"categories"`
	TotalFiles int              `json:"total_files"`
	Extensions map[string]int   `json:"extensions"`
}

// RepositorySummary is the aggregate repository view. Category and file
// counts are known right after discovery; Languages and OverallQuality
// are filled in by the synthesizer once all chunks complete.
type RepositorySummary struct {
	TotalFiles     int       `json:"total_files"`
	Languages      []string  `json:"languages"`
	Structure      Structure `json:"structure"`
	OverallQuality float64   `json:"overall_quality"`
}

// FinalAnalysis is the pipeline's terminal artifact: the repository
// summary, per-category breakdown, global issue histogram, generated
// insights and recommendations, and full chunk-level detail for
// drill-down. Created once at the end of the pipeline.
type FinalAnalysis struct {
	RepositorySummary  RepositorySummary         `json:"repository_summary"`
	AnalysisByCategory map[Category]ChunkSummary `json:"analysis_by_category"`
	IssueSummary       map[string]int            `json:"issue_summary"`
	Insights           []string                  `json:"insights"`
	Recommendations    []string                  `json:"recommendations"`
	ChunkDetails       []ChunkResult             `json:"chunk_details"`
}
