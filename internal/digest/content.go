package digest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ingest/internal/ignore"
	"github.com/temirov/ingest/internal/language"
	"github.com/temirov/ingest/internal/utils"
)

const (
	separatorLine  = "=================================================="
	fileHeaderWord = "FILE: "
	fenceMarker    = "```"
)

// renderContent walks the root in the same lexicographic order as RenderTree
// and returns one rendered block per included text file. Binary and unreadable
// files are skipped with a notice; an unlistable directory contributes no
// blocks but also records a notice.
func renderContent(rootDirectoryPath string, ruleSet *ignore.RuleSet, collector *noticeCollector) []string {
	var renderedBlocks []string
	appendContentBlocks(rootDirectoryPath, rootDirectoryPath, ruleSet, collector, &renderedBlocks)
	return renderedBlocks
}

func appendContentBlocks(currentDirectoryPath string, rootDirectoryPath string, ruleSet *ignore.RuleSet, collector *noticeCollector, renderedBlocks *[]string) {
	includedEntries, readDirectoryError := listIncludedEntries(currentDirectoryPath, rootDirectoryPath, ruleSet)
	if readDirectoryError != nil {
		collector.record(currentDirectoryPath, ReasonUnlistableDirectory)
		return
	}
	for _, directoryEntry := range includedEntries {
		entryPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		if directoryEntry.IsDir() {
			appendContentBlocks(entryPath, rootDirectoryPath, ruleSet, collector, renderedBlocks)
			continue
		}
		renderedBlock, rendered := renderFileBlock(entryPath, rootDirectoryPath, collector)
		if rendered {
			*renderedBlocks = append(*renderedBlocks, renderedBlock)
		}
	}
}

// renderFileBlock reads one file and formats it as a separator-delimited,
// fenced block. The header path is relative to the root in forward-slash form
// regardless of platform; the body is the exact file contents followed by one
// newline before the closing fence.
func renderFileBlock(filePath string, rootDirectoryPath string, collector *noticeCollector) (string, bool) {
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		collector.record(filePath, ReasonUnreadableFile)
		return "", false
	}
	if utils.IsBinary(fileBytes) {
		collector.record(filePath, ReasonBinaryFile)
		return "", false
	}

	relativePath, relativeError := filepath.Rel(rootDirectoryPath, filePath)
	if relativeError != nil {
		collector.record(filePath, ReasonUnreadableFile)
		return "", false
	}
	fenceLabel := language.Classify(filepath.Base(filePath))

	var blockBuilder strings.Builder
	blockBuilder.WriteString(separatorLine + "\n")
	blockBuilder.WriteString(fileHeaderWord + filepath.ToSlash(relativePath) + "\n")
	blockBuilder.WriteString(separatorLine + "\n")
	blockBuilder.WriteString(fenceMarker + fenceLabel + "\n")
	blockBuilder.Write(fileBytes)
	blockBuilder.WriteString("\n" + fenceMarker + "\n")
	return blockBuilder.String(), true
}
