package digest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ingest/internal/digest"
)

// recordingSink captures every notice forwarded by the assembler.
type recordingSink struct {
	notices []digest.Notice
}

func (sink *recordingSink) Notify(notice digest.Notice) {
	sink.notices = append(sink.notices, notice)
}

// TestAssembleDigestFormat verifies the digest end to end: tree section,
// content section, exactly one python block, nothing from the ignored sub/.
func TestAssembleDigestFormat(testingHandle *testing.T) {
	rootDirectory := buildFixtureTree(testingHandle)
	assembler := digest.Assembler{}
	assembled, assembleError := assembler.Assemble(rootDirectory, displayName)
	if assembleError != nil {
		testingHandle.Fatalf("Assemble error: %v", assembleError)
	}

	expectedDigest := strings.Join([]string{
		"Directory structure:",
		"root/",
		"├── .gitignore",
		"└── a.py",
		"",
		"File contents:",
		"",
		"==================================================",
		"FILE: .gitignore",
		"==================================================",
		"```text",
		"sub/",
		"",
		"```",
		"",
		"==================================================",
		"FILE: a.py",
		"==================================================",
		"```python",
		"x=1",
		"```",
		"",
	}, "\n")
	if assembled.Digest != expectedDigest {
		testingHandle.Fatalf("unexpected digest:\n%q\nexpected:\n%q", assembled.Digest, expectedDigest)
	}
	if strings.Contains(assembled.Digest, nestedFileName) {
		testingHandle.Fatalf("digest should not contain ignored file %s", nestedFileName)
	}
	if len(assembled.Notices) != 0 {
		testingHandle.Fatalf("expected no notices, got %+v", assembled.Notices)
	}
}

// TestAssembleDeterminism verifies byte-identical output across runs on an unchanged root.
func TestAssembleDeterminism(testingHandle *testing.T) {
	rootDirectory := buildFixtureTree(testingHandle)
	assembler := digest.Assembler{}
	firstRun, firstError := assembler.Assemble(rootDirectory, displayName)
	if firstError != nil {
		testingHandle.Fatalf("first Assemble error: %v", firstError)
	}
	secondRun, secondError := assembler.Assemble(rootDirectory, displayName)
	if secondError != nil {
		testingHandle.Fatalf("second Assemble error: %v", secondError)
	}
	if firstRun.Digest != secondRun.Digest {
		testingHandle.Fatalf("digest is not deterministic")
	}
}

// TestAssembleNegationReincludes verifies the last-match-wins law across both sections.
func TestAssembleNegationReincludes(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixtureFile(testingHandle, rootDirectory, gitIgnoreFileName, "*.py\n!a.py\n")
	writeFixtureFile(testingHandle, rootDirectory, pythonFileName, pythonFileContent)
	writeFixtureFile(testingHandle, rootDirectory, "dropped.py", "y=2")

	assembler := digest.Assembler{}
	assembled, assembleError := assembler.Assemble(rootDirectory, displayName)
	if assembleError != nil {
		testingHandle.Fatalf("Assemble error: %v", assembleError)
	}
	if !strings.Contains(assembled.Digest, "└── a.py") && !strings.Contains(assembled.Digest, "├── a.py") {
		testingHandle.Fatalf("re-included file missing from tree:\n%s", assembled.Digest)
	}
	if !strings.Contains(assembled.Digest, "FILE: a.py") {
		testingHandle.Fatalf("re-included file missing from content section")
	}
	if strings.Contains(assembled.Digest, "dropped.py") {
		testingHandle.Fatalf("excluded file leaked into the digest")
	}
}

// TestAssembleSkipsBinaryFile verifies a binary file is absent from content,
// still listed in the tree, and reported as a notice without aborting the run.
func TestAssembleSkipsBinaryFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixtureFile(testingHandle, rootDirectory, pythonFileName, pythonFileContent)
	binaryFilePath := filepath.Join(rootDirectory, binaryFileName)
	if writeError := os.WriteFile(binaryFilePath, []byte{0x00, 0xff, 0x10}, 0o644); writeError != nil {
		testingHandle.Fatalf("write binary file: %v", writeError)
	}

	sink := &recordingSink{}
	assembler := digest.Assembler{Diagnostics: sink}
	assembled, assembleError := assembler.Assemble(rootDirectory, displayName)
	if assembleError != nil {
		testingHandle.Fatalf("Assemble error: %v", assembleError)
	}
	if strings.Contains(assembled.Digest, "FILE: "+binaryFileName) {
		testingHandle.Fatalf("binary file should not appear in the content section")
	}
	if !strings.Contains(assembled.Digest, "└── "+binaryFileName) {
		testingHandle.Fatalf("binary file should still appear in the tree:\n%s", assembled.Digest)
	}
	if !strings.Contains(assembled.Digest, "FILE: "+pythonFileName) {
		testingHandle.Fatalf("text file should still be rendered")
	}
	if len(sink.notices) != 1 || sink.notices[0].Reason != digest.ReasonBinaryFile {
		testingHandle.Fatalf("expected one binary-file notice, got %+v", sink.notices)
	}
	if len(assembled.Notices) != 1 || assembled.Notices[0].Path != binaryFilePath {
		testingHandle.Fatalf("expected notice for %s, got %+v", binaryFilePath, assembled.Notices)
	}
}

// TestAssembleOmitTree verifies the tree section can be dropped.
func TestAssembleOmitTree(testingHandle *testing.T) {
	rootDirectory := buildFixtureTree(testingHandle)
	assembler := digest.Assembler{OmitTree: true}
	assembled, assembleError := assembler.Assemble(rootDirectory, displayName)
	if assembleError != nil {
		testingHandle.Fatalf("Assemble error: %v", assembleError)
	}
	if strings.Contains(assembled.Digest, "Directory structure:") {
		testingHandle.Fatalf("tree section should be omitted")
	}
	if !strings.HasPrefix(assembled.Digest, "File contents:\n\n") {
		testingHandle.Fatalf("digest should start with the content header, got %q", assembled.Digest[:32])
	}
}

// TestAssembleRootMissing verifies a missing root is a fatal error with no output.
func TestAssembleRootMissing(testingHandle *testing.T) {
	assembler := digest.Assembler{}
	_, assembleError := assembler.Assemble(filepath.Join(testingHandle.TempDir(), "absent"), displayName)
	if assembleError == nil {
		testingHandle.Fatalf("expected error for missing root")
	}
}

// TestAssembleUnreadableDirectoryNotice verifies an unlistable directory
// degrades into a notice while siblings still render.
func TestAssembleUnreadableDirectoryNotice(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}
	rootDirectory := testingHandle.TempDir()
	lockedDirectoryPath := filepath.Join(rootDirectory, lockedDirName)
	writeFixtureFile(testingHandle, rootDirectory, filepath.Join(lockedDirName, "hidden.txt"), "secret")
	writeFixtureFile(testingHandle, rootDirectory, pythonFileName, pythonFileContent)
	if chmodError := os.Chmod(lockedDirectoryPath, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() {
		_ = os.Chmod(lockedDirectoryPath, 0o755)
	})

	assembler := digest.Assembler{}
	assembled, assembleError := assembler.Assemble(rootDirectory, displayName)
	if assembleError != nil {
		testingHandle.Fatalf("Assemble error: %v", assembleError)
	}
	if !strings.Contains(assembled.Digest, "FILE: "+pythonFileName) {
		testingHandle.Fatalf("sibling file should still render")
	}
	foundUnlistable := false
	for _, notice := range assembled.Notices {
		if notice.Reason == digest.ReasonUnlistableDirectory && notice.Path == lockedDirectoryPath {
			foundUnlistable = true
		}
	}
	if !foundUnlistable {
		testingHandle.Fatalf("expected unlistable-directory notice, got %+v", assembled.Notices)
	}
}
