package digest

import (
	"fmt"
	"os"
	"strings"

	"github.com/temirov/ingest/internal/ignore"
)

const (
	treeSectionHeader    = "Directory structure:\n"
	contentSectionHeader = "File contents:\n\n"
	sectionSeparator     = "\n\n"
	blockJoiner          = "\n"
)

// Assembler orchestrates the tree and content renderers over a single root.
type Assembler struct {
	// Diagnostics, when set, receives every non-fatal notice as it occurs.
	Diagnostics DiagnosticsSink
	// OmitTree drops the directory structure section from the digest.
	OmitTree bool
	// IgnoreOptions adjusts how the root's ignore rules are loaded.
	IgnoreOptions ignore.Options
}

// Result is the outcome of one assembly run: the digest text plus every
// non-fatal notice gathered along the way.
type Result struct {
	Digest  string
	Notices []Notice
}

// Assemble builds one ignore rule set for the root, renders the tree and the
// file contents against the identical root and rules, and joins the sections.
// It performs no writes; re-running on an unchanged root yields byte-identical
// output. Only a root that cannot be read at all is a fatal error.
func (assembler *Assembler) Assemble(rootDirectoryPath string, displayName string) (Result, error) {
	rootInformation, rootStatError := os.Stat(rootDirectoryPath)
	if rootStatError != nil {
		return Result{}, fmt.Errorf("reading root %s: %w", rootDirectoryPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return Result{}, fmt.Errorf("root %s is not a directory", rootDirectoryPath)
	}

	ruleSet := ignore.Load(rootDirectoryPath, assembler.IgnoreOptions)
	collector := &noticeCollector{sink: assembler.Diagnostics}

	treeSection := ""
	if !assembler.OmitTree {
		treeSection = treeSectionHeader + RenderTree(rootDirectoryPath, ruleSet, displayName) + sectionSeparator
	}

	renderedBlocks := renderContent(rootDirectoryPath, ruleSet, collector)
	contentSection := contentSectionHeader + strings.Join(renderedBlocks, blockJoiner)

	return Result{
		Digest:  treeSection + contentSection,
		Notices: collector.notices,
	}, nil
}
