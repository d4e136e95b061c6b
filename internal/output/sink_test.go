package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/ingest/internal/output"
)

const digestText = "Directory structure:\nroot/\n"

// TestFileSinkWrite verifies the digest is stored at the configured path.
func TestFileSinkWrite(testingHandle *testing.T) {
	outputPath := filepath.Join(testingHandle.TempDir(), "digest.md")
	sink := output.FileSink{Path: outputPath}
	if writeError := sink.Write(digestText); writeError != nil {
		testingHandle.Fatalf("Write error: %v", writeError)
	}
	storedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("read back: %v", readError)
	}
	if string(storedBytes) != digestText {
		testingHandle.Fatalf("expected %q, got %q", digestText, string(storedBytes))
	}
}

// TestWriterSinkWrite verifies streaming to an arbitrary writer.
func TestWriterSinkWrite(testingHandle *testing.T) {
	var buffer bytes.Buffer
	sink := output.WriterSink{Writer: &buffer}
	if writeError := sink.Write(digestText); writeError != nil {
		testingHandle.Fatalf("Write error: %v", writeError)
	}
	if buffer.String() != digestText {
		testingHandle.Fatalf("expected %q, got %q", digestText, buffer.String())
	}
}

// TestNewSinkSelection verifies the stdout marker selects a writer sink.
func TestNewSinkSelection(testingHandle *testing.T) {
	if _, isWriter := output.NewSink(output.StdoutPath).(output.WriterSink); !isWriter {
		testingHandle.Fatalf("expected WriterSink for %q", output.StdoutPath)
	}
	if _, isFile := output.NewSink("digest.md").(output.FileSink); !isFile {
		testingHandle.Fatalf("expected FileSink for a file path")
	}
}
