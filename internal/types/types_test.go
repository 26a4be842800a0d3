package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPriority(t *testing.T) {
	tests := []struct {
		category Category
		rank     int
	}{
		{CategoryCore, 1},
		{CategoryTests, 2},
		{CategoryConfig, 3},
		{CategoryDocs, 4},
		{CategoryBuild, 5},
		{CategoryOther, 6},
		{Category("bogus"), 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rank, tt.category.Priority(), "category %s", tt.category)
	}
}

func TestChunkSummaryEmpty(t *testing.T) {
	assert.True(t, ChunkSummary{}.Empty())
	assert.False(t, ChunkSummary{FileCount: 1, AverageQuality: 7.5}.Empty())
}
