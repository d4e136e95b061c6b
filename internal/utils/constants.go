// Package utils contains general helper functions shared across the ingest tool.
package utils

const (
	// GitDirectoryName is the name of the Git metadata directory, always excluded from digests.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the repository-level ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitExcludeRelativePath locates the repository-internal exclude file below the root.
	GitExcludeRelativePath = GitDirectoryName + "/info/exclude"

	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".ingest.yaml"
	// GlobalConfigDirectoryName is the per-user configuration directory under the home directory.
	GlobalConfigDirectoryName = ".ingest"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal application errors.
	ApplicationExecutionFailedMessage = "application execution failed"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}
