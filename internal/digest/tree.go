package digest

import (
	"path/filepath"
	"strings"

	"github.com/temirov/ingest/internal/ignore"
)

const (
	branchConnector   = "├── "
	lastConnector     = "└── "
	branchIndentation = "│   "
	lastIndentation   = "    "
)

// RenderTree produces an indented ASCII tree of the root directory, honoring
// the ignore rules. The root line is "<displayName>/"; every other line shows
// the entry's bare name behind a prefix built from ancestor is-last flags.
// Unlistable directories render as empty rather than aborting.
func RenderTree(rootDirectoryPath string, ruleSet *ignore.RuleSet, displayName string) string {
	treeLines := []string{displayName + "/"}
	appendTreeLines(rootDirectoryPath, rootDirectoryPath, "", ruleSet, &treeLines)
	return strings.Join(treeLines, "\n")
}

// appendTreeLines walks one directory level and recurses into subdirectories
// depth-first, keeping the lexicographic entry order of listIncludedEntries.
func appendTreeLines(currentDirectoryPath string, rootDirectoryPath string, linePrefix string, ruleSet *ignore.RuleSet, treeLines *[]string) {
	includedEntries, _ := listIncludedEntries(currentDirectoryPath, rootDirectoryPath, ruleSet)
	for entryIndex, directoryEntry := range includedEntries {
		isLastSibling := entryIndex == len(includedEntries)-1
		connector := branchConnector
		childIndentation := branchIndentation
		if isLastSibling {
			connector = lastConnector
			childIndentation = lastIndentation
		}
		*treeLines = append(*treeLines, linePrefix+connector+directoryEntry.Name())
		if directoryEntry.IsDir() {
			childDirectoryPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
			appendTreeLines(childDirectoryPath, rootDirectoryPath, linePrefix+childIndentation, ruleSet, treeLines)
		}
	}
}
