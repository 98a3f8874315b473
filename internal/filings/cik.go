package filings

import (
	"errors"
	"fmt"
	"strings"
)

// cikLength is the canonical width of a Central Index Key in EDGAR URLs.
const cikLength = 10

// NormalizeCIK checks the syntactic format of a raw CIK and returns it
// zero-padded to ten digits. It trims surrounding whitespace and rejects
// empty, non-numeric and overlong input. The check is syntactic only: it
// does not verify that the CIK exists in the SEC database.
func NormalizeCIK(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return "", errors.New("cik is empty")
	}
	if len(trimmed) > cikLength {
		return "", fmt.Errorf("cik %q is longer than %d digits", trimmed, cikLength)
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("cik %q contains non-digit characters", trimmed)
		}
	}

	return strings.Repeat("0", cikLength-len(trimmed)) + trimmed, nil
}
