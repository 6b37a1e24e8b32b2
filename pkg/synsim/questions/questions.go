// Package questions parses multiple-choice synonym test sets into
// evaluate.Question records.
package questions

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

// Format names a question-set file layout.
type Format string

const (
	FormatTOEFL Format = "toefl"
	FormatESL   Format = "esl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTOEFL, FormatESL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("question format %q: %w", s, internalerr.ErrInvalidConfig)
	}
}

// Load reads and parses a question-set file.
func Load(path string, format Format) ([]evaluate.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question set: %w", err)
	}
	defer f.Close()

	var qs []evaluate.Question
	switch format {
	case FormatTOEFL:
		qs, err = ParseTOEFL(f)
	case FormatESL:
		qs, err = ParseESL(f)
	case FormatYAML:
		qs, err = ParseYAML(f)
	default:
		return nil, fmt.Errorf("question format %q: %w", format, internalerr.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return qs, nil
}

func cleanWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func skipLine(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), internalerr.ErrMalformedQuestion)
}
