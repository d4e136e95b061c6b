// Package language maps file names to Markdown fence labels for syntax highlighting.
package language

import "path/filepath"

// DefaultLabel is the fence label used for unrecognized files.
const DefaultLabel = "text"

// fenceLabels maps full file names and extensions to fence labels. Full names
// take precedence over extensions. Extension lookup is case-sensitive on the
// literal extension, so "Main.GO" falls back to DefaultLabel.
var fenceLabels = map[string]string{
	".py":     "python",
	".js":     "javascript",
	".ts":     "typescript",
	".java":   "java",
	".c":      "c",
	".cpp":    "cpp",
	".h":      "c",
	".hpp":    "cpp",
	".cs":     "csharp",
	".go":     "go",
	".rs":     "rust",
	".rb":     "ruby",
	".php":    "php",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".json":   "json",
	".xml":    "xml",
	".yml":    "yaml",
	".yaml":   "yaml",
	".md":     "markdown",
	".sh":     "shell",
	".bash":   "bash",
	".ps1":    "powershell",
	".sql":    "sql",
	".r":      "r",
	".kt":     "kotlin",
	".swift":  "swift",
	".dart":   "dart",
	".vue":    "vue",
	".svelte": "svelte",
	".toml":   "toml",
	".ini":    "ini",
	".cfg":    "ini",
	".txt":    "text",

	"Dockerfile": "dockerfile",
	"Makefile":   "makefile",
}

// Classify returns the fence label for a file name. An exact full-name match
// wins over an extension match; unknown names and extensions yield DefaultLabel.
func Classify(fileName string) string {
	if label, knownName := fenceLabels[fileName]; knownName {
		return label
	}
	if label, knownExtension := fenceLabels[filepath.Ext(fileName)]; knownExtension {
		return label
	}
	return DefaultLabel
}
