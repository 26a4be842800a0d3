// Package analyzer provides the file-analyzer capability consumed by
// the chunk executor: a heuristic implementation that derives quality
// signals from file content, and an AI-backed implementation that
// delegates scoring to Anthropic.
package analyzer

import (
	"path/filepath"
	"strings"
)

// languageByExtension maps lowercase file extensions to language names.
var languageByExtension = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".go":    "go",
	".java":  "java",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".sh":    "shell",
	".bash":  "shell",
	".sql":   "sql",
}

// DetectLanguage returns the language for a file path based on its
// extension, or "" when the extension is not recognized. A failed
// detection is not an error.
func DetectLanguage(path string) string {
	return languageByExtension[strings.ToLower(filepath.Ext(path))]
}
