// Package discovery walks a repository tree, filters out entries that
// cannot safely be analyzed, and classifies every surviving file into
// exactly one category. It is the first stage of the analysis pipeline
// and performs no analysis itself.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/brigadehq/brigade/internal/types"
)

// MaxFileSize is the largest file the pipeline will load into memory
// for analysis. Larger files are silently excluded.
const MaxFileSize = 1024 * 1024

// ignoreDirs are directory names skipped entirely during the walk:
// version-control metadata, dependency/virtualenv directories, and
// build/cache output.
var ignoreDirs = map[string]struct{}{
	".git":          {},
	"__pycache__":   {},
	"node_modules":  {},
	".pytest_cache": {},
	"venv":          {},
	"env":           {},
	".venv":         {},
	"dist":          {},
	"build":         {},
	".cache":        {},
}

// binaryExtensions are file extensions excluded before categorization.
var binaryExtensions = map[string]struct{}{
	".pyc": {},
	".so":  {},
	".dll": {},
	".exe": {},
	".bin": {},
	".jpg": {},
	".png": {},
	".gif": {},
	".pdf": {},
}

// Inventory maps each category to its discovered files, in walk order.
type Inventory map[types.Category][]types.FileEntry

// TotalFiles returns the number of files across all categories.
func (inv Inventory) TotalFiles() int {
	total := 0
	for _, files := range inv {
		total += len(files)
	}
	return total
}

// Walker discovers and categorizes every analyzable file under a root
// directory.
type Walker struct {
	// Root is the repository directory to scan.
	Root string
}

// NewWalker creates a walker for the given repository root.
func NewWalker(root string) *Walker {
	return &Walker{Root: root}
}

// Discover walks the tree rooted at w.Root and returns the categorized
// inventory. Files whose size cannot be read are silently excluded; an
// unreadable or nonexistent root is the only hard failure.
func (w *Walker) Discover(ctx context.Context) (Inventory, error) {
	info, err := os.Stat(w.Root)
	if err != nil {
		return nil, fmt.Errorf("reading repository root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository root %q is not a directory", w.Root)
	}

	inv := Inventory{}
	for _, cat := range types.CategoryOrder {
		inv[cat] = nil
	}

	err = filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are excluded, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if _, ignored := ignoreDirs[d.Name()]; ignored && path != w.Root {
				return filepath.SkipDir
			}
			return nil
		}

		if _, binary := binaryExtensions[strings.ToLower(filepath.Ext(path))]; binary {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil // cannot stat: excluded
		}
		if fi.Size() > MaxFileSize {
			return nil
		}

		relPath, err := filepath.Rel(w.Root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		cat := Categorize(relPath)
		inv[cat] = append(inv[cat], types.FileEntry{Path: relPath, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking repository: %w", err)
	}

	return inv, nil
}

// configMarkers, docMarkers, and buildMarkers are substring patterns
// matched against the lowercased relative path, in rule order.
var (
	configMarkers = []string{"config", "settings", ".env", "requirements", "package.json", "dockerfile"}
	docMarkers    = []string{"readme", "doc", ".md", ".rst", ".txt"}
	buildMarkers  = []string{"makefile", "setup.py", ".yml", ".yaml", "build", "deploy"}
)

// sourceExtensions are the recognized source-code extensions for the
// core category.
var sourceExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".ts":   {},
	".java": {},
	".go":   {},
	".rs":   {},
	".cpp":  {},
	".c":    {},
	".h":    {},
}

// Categorize maps a relative file path to exactly one category. Rules
// are evaluated in fixed priority order with case-insensitive matching,
// so the same path always yields the same category.
func Categorize(relPath string) types.Category {
	lower := strings.ToLower(filepath.ToSlash(relPath))
	base := strings.ToLower(filepath.Base(relPath))

	if strings.Contains(lower, "test") || strings.HasPrefix(base, "test_") {
		return types.CategoryTests
	}

	for _, marker := range configMarkers {
		if strings.Contains(lower, marker) {
			return types.CategoryConfig
		}
	}

	for _, marker := range docMarkers {
		if strings.Contains(lower, marker) {
			return types.CategoryDocs
		}
	}

	for _, marker := range buildMarkers {
		if strings.Contains(lower, marker) {
			return types.CategoryBuild
		}
	}

	if _, ok := sourceExtensions[filepath.Ext(lower)]; ok {
		return types.CategoryCore
	}

	return types.CategoryOther
}

// Summarize builds the repository summary scaffold from a discovery
// inventory. Languages and OverallQuality are left for the synthesizer.
func Summarize(inv Inventory) types.RepositorySummary {
	extensions := map[string]int{}
	categories := map[types.Category]int{}
	for cat, files := range inv {
		categories[cat] = len(files)
		for _, f := range files {
			if ext := strings.ToLower(filepath.Ext(f.Path)); ext != "" {
				extensions[ext]++
			}
		}
	}

	total := inv.TotalFiles()
	return types.RepositorySummary{
		TotalFiles: total,
		Structure: types.Structure{
			Categories: categories,
			TotalFiles: total,
			Extensions: extensions,
		},
	}
}
