// Package output writes the assembled digest to its destination. The digest
// core never performs this write itself.
package output

import (
	"fmt"
	"io"
	"os"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

const digestFileMode = 0o644

// Sink receives the final digest text.
type Sink interface {
	Write(digest string) error
}

// FileSink writes the digest to a file, replacing any existing content.
type FileSink struct {
	Path string
}

// Write stores the digest at the configured path.
func (sink FileSink) Write(digest string) error {
	if writeError := os.WriteFile(sink.Path, []byte(digest), digestFileMode); writeError != nil {
		return fmt.Errorf("writing digest to %s: %w", sink.Path, writeError)
	}
	return nil
}

// WriterSink streams the digest to an io.Writer, typically standard output.
type WriterSink struct {
	Writer io.Writer
}

// Write copies the digest to the underlying writer.
func (sink WriterSink) Write(digest string) error {
	if _, writeError := io.WriteString(sink.Writer, digest); writeError != nil {
		return fmt.Errorf("writing digest: %w", writeError)
	}
	return nil
}

// NewSink selects the sink for an output path: StdoutPath streams to standard
// output, anything else writes a file.
func NewSink(outputPath string) Sink {
	if outputPath == StdoutPath {
		return WriterSink{Writer: os.Stdout}
	}
	return FileSink{Path: outputPath}
}

var (
	_ Sink = FileSink{}
	_ Sink = WriterSink{}
)
