// Package ignore loads gitignore-style pattern files and answers exclusion queries.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/temirov/ingest/internal/utils"
)

const (
	commentPrefix        = "#"
	pathSegmentSeparator = "/"
)

// RuleSet holds the compiled ignore patterns for one root directory.
// It is immutable after construction and safe for concurrent readers.
type RuleSet struct {
	matcher      gitignore.Matcher
	patternCount int
}

// Options adjusts which pattern sources a RuleSet is loaded from.
type Options struct {
	// SkipRepositoryFiles disables reading .gitignore and .git/info/exclude.
	SkipRepositoryFiles bool
	// ExtraPatterns are appended after the repository's own patterns, so they
	// participate in the usual last-match-wins evaluation.
	ExtraPatterns []string
}

// Load builds a RuleSet for the given root directory. Patterns are read from
// <root>/.gitignore and then <root>/.git/info/exclude; both files are optional
// and an unreadable file is treated the same as an absent one. A root with no
// patterns yields a RuleSet that matches nothing.
func Load(rootDirectoryPath string, options Options) *RuleSet {
	var patternLines []string
	if !options.SkipRepositoryFiles {
		patternLines = append(patternLines, readPatternLines(filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName))...)
		patternLines = append(patternLines, readPatternLines(filepath.Join(rootDirectoryPath, filepath.FromSlash(utils.GitExcludeRelativePath)))...)
	}
	for _, extraPattern := range options.ExtraPatterns {
		trimmedPattern := strings.TrimSpace(extraPattern)
		if trimmedPattern == "" || strings.HasPrefix(trimmedPattern, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedPattern)
	}

	compiledPatterns := make([]gitignore.Pattern, 0, len(patternLines))
	for _, patternLine := range patternLines {
		compiledPatterns = append(compiledPatterns, gitignore.ParsePattern(patternLine, nil))
	}

	return &RuleSet{
		matcher:      gitignore.NewMatcher(compiledPatterns),
		patternCount: len(compiledPatterns),
	}
}

// Matches reports whether the path, relative to the root and expressed with
// forward slashes, is excluded by the loaded patterns. Evaluation follows
// gitignore semantics: patterns apply in file order and the last matching
// pattern wins, so a later negation re-includes an earlier exclusion.
func (ruleSet *RuleSet) Matches(relativePath string, isDirectory bool) bool {
	if ruleSet == nil || ruleSet.patternCount == 0 {
		return false
	}
	normalizedPath := strings.Trim(filepath.ToSlash(relativePath), pathSegmentSeparator)
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}
	return ruleSet.matcher.Match(strings.Split(normalizedPath, pathSegmentSeparator), isDirectory)
}

// PatternCount returns the number of loaded patterns.
func (ruleSet *RuleSet) PatternCount() int {
	if ruleSet == nil {
		return 0
	}
	return ruleSet.patternCount
}

// readPatternLines returns the non-blank, non-comment lines of an ignore file.
// Missing or unreadable files yield no lines; ignore files are user-authored
// and loaded best-effort.
func readPatternLines(ignoreFilePath string) []string {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		return nil
	}
	defer fileHandle.Close()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedLine)
	}
	return patternLines
}
