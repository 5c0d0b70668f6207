package utils

import (
	"strings"
)

// NormalizeContent canonicalizes uploaded statement content before
// fingerprinting: line endings collapse to LF, trailing whitespace is
// stripped per line, and trailing blank lines are dropped. Copy-pasting the
// same statement from different systems therefore hashes identically.
func NormalizeContent(raw []byte) []byte {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}

	return []byte(strings.Join(lines[:end], "\n"))
}
