// Package chunker converts categorized file lists into bounded analysis
// chunks. Each chunk holds files from a single category, capped by a
// byte-size budget and a file-count budget, and carries the category's
// fixed priority rank.
package chunker

import (
	"github.com/google/uuid"

	"github.com/brigadehq/brigade/internal/discovery"
	"github.com/brigadehq/brigade/internal/types"
)

// Default budgets for chunk construction.
const (
	DefaultSizeBudget = 50000
	DefaultFileBudget = 20
)

// Builder splits categorized files into chunks.
type Builder struct {
	// SizeBudget is the maximum accumulated byte size per chunk. A
	// single file larger than the budget still gets its own chunk.
	SizeBudget int64

	// FileBudget is the maximum number of files per chunk.
	FileBudget int
}

// NewBuilder creates a chunk builder, substituting defaults for
// non-positive budgets.
func NewBuilder(sizeBudget int64, fileBudget int) *Builder {
	if sizeBudget <= 0 {
		sizeBudget = DefaultSizeBudget
	}
	if fileBudget <= 0 {
		fileBudget = DefaultFileBudget
	}
	return &Builder{SizeBudget: sizeBudget, FileBudget: fileBudget}
}

// Build produces the full chunk sequence for an inventory, one run of
// chunks per category in fixed priority order (core first). Files are
// packed greedily in discovery order; no chunk mixes categories.
func (b *Builder) Build(inv discovery.Inventory) []types.Chunk {
	var chunks []types.Chunk
	for i, cat := range types.CategoryOrder {
		files := inv[cat]
		if len(files) == 0 {
			continue
		}
		chunks = append(chunks, b.splitCategory(files, cat, i+1)...)
	}
	return chunks
}

// splitCategory packs one category's files into chunks with a single
// greedy pass. A file that would push the running byte total over the
// budget, or land past the file-count budget, closes the current chunk
// and starts a new one. The overflow check runs before the file is
// added, so a lone oversized file is never rejected: it becomes its own
// one-file chunk.
func (b *Builder) splitCategory(files []types.FileEntry, cat types.Category, priority int) []types.Chunk {
	var chunks []types.Chunk
	var current []string
	var currentSize int64

	emit := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, types.Chunk{
			ID:        uuid.NewString(),
			Category:  cat,
			Files:     current,
			SizeBytes: currentSize,
			Priority:  priority,
		})
	}

	for _, f := range files {
		if currentSize+f.Size > b.SizeBudget || len(current) >= b.FileBudget {
			emit()
			current = []string{f.Path}
			currentSize = f.Size
			continue
		}
		current = append(current, f.Path)
		currentSize += f.Size
	}
	emit()

	return chunks
}
