package utils_test

import (
	"testing"

	"github.com/temirov/ingest/internal/utils"
)

// TestIsBinary verifies binary detection over representative byte sequences.
func TestIsBinary(testingHandle *testing.T) {
	testCases := []struct {
		testName string
		data     []byte
		expected bool
	}{
		{testName: "empty", data: nil, expected: false},
		{testName: "plain text", data: []byte("hello world\n"), expected: false},
		{testName: "utf8 text", data: []byte("héllо"), expected: false},
		{testName: "nul byte", data: []byte{'a', 0, 'b'}, expected: true},
		{testName: "invalid utf8", data: []byte{0xff, 0xfe, 0xfd}, expected: true},
	}
	for index, testCase := range testCases {
		if actual := utils.IsBinary(testCase.data); actual != testCase.expected {
			testingHandle.Errorf("case %d (%s): expected %v, got %v", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestDeduplicatePatterns verifies duplicate removal preserves first occurrences.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"*.log", "vendor/", "*.log", "vendor/"})
	expected := []string{"*.log", "vendor/"}
	if len(deduplicated) != len(expected) {
		testingHandle.Fatalf("expected %d patterns, got %d", len(expected), len(deduplicated))
	}
	for position, pattern := range expected {
		if deduplicated[position] != pattern {
			testingHandle.Errorf("expected %q at position %d, got %q", pattern, position, deduplicated[position])
		}
	}
}
