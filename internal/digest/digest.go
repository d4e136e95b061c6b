// Package digest turns a repository root into a single flattened text document:
// a directory tree listing followed by the fenced contents of every non-ignored
// text file.
package digest

import (
	"os"
	"path/filepath"

	"github.com/temirov/ingest/internal/ignore"
	"github.com/temirov/ingest/internal/utils"
)

// Notice reason values for non-fatal conditions encountered during a run.
const (
	ReasonUnreadableFile      = "unreadable file"
	ReasonBinaryFile          = "binary file"
	ReasonUnlistableDirectory = "unlistable directory"
)

// Notice describes one entry skipped during rendering. Notices never affect
// the digest itself; they exist so callers can report degraded runs.
type Notice struct {
	Path   string
	Reason string
}

// DiagnosticsSink receives best-effort notices while a digest is assembled.
type DiagnosticsSink interface {
	Notify(notice Notice)
}

// noticeCollector accumulates notices and forwards them to an optional sink.
type noticeCollector struct {
	sink    DiagnosticsSink
	notices []Notice
}

func (collector *noticeCollector) record(path string, reason string) {
	notice := Notice{Path: path, Reason: reason}
	collector.notices = append(collector.notices, notice)
	if collector.sink != nil {
		collector.sink.Notify(notice)
	}
}

// listIncludedEntries returns the entries of currentDirectoryPath that survive
// both the unconditional Git metadata exclusion and the ignore rules.
// os.ReadDir returns entries sorted by filename, which fixes the lexicographic
// order of both renderers with directories and files interleaved. A listing
// failure returns a nil slice alongside the error; callers treat the directory
// as empty.
func listIncludedEntries(currentDirectoryPath string, rootDirectoryPath string, ruleSet *ignore.RuleSet) ([]os.DirEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	includedEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.Name() == utils.GitDirectoryName {
			continue
		}
		entryPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		relativePath, relativeError := filepath.Rel(rootDirectoryPath, entryPath)
		if relativeError != nil {
			continue
		}
		if ruleSet.Matches(filepath.ToSlash(relativePath), directoryEntry.IsDir()) {
			continue
		}
		includedEntries = append(includedEntries, directoryEntry)
	}
	return includedEntries, nil
}
