// Package tokenizer estimates token counts for digest text.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// DefaultModel is used when no tokenizer model is requested.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model along with the name
// actually selected. Unknown models fall back to the default encoding.
func NewCounter(configuration Config) (Counter, string, error) {
	modelName := strings.TrimSpace(configuration.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	modelName = strings.ToLower(modelName)

	encoding, encodingError := tiktoken.EncodingForModel(modelName)
	if encodingError == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: modelName}, modelName, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}
