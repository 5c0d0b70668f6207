package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FingerprintContent hashes normalized textual content. Pasting the same
// statement with different line endings or trailing whitespace yields the
// same fingerprint.
func FingerprintContent(raw []byte) string {
	sum := sha256.Sum256(NormalizeContent(raw))
	return hex.EncodeToString(sum[:])
}

// FingerprintBytes hashes binary content (spreadsheet uploads) as-is.
func FingerprintBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

var currencyMarks = strings.NewReplacer("$", "", "€", "", "£", "", "ARS", "", "USD", "", "EUR", "", " ", "", " ", "")

// ParseAmount parses a statement amount cell into a float. It accepts
// thousand separators in either convention ("1,234.56" and "1.234,56"),
// currency symbols, and accounting-style parentheses for negatives.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = currencyMarks.Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// The rightmost separator is the decimal mark.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A lone comma is a decimal mark when followed by 1-2 digits.
		if len(cleaned)-lastComma-1 <= 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	if negative {
		value = value.Neg()
	}
	result, _ := value.Float64()
	return result, nil
}
