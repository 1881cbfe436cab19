package extractor

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// newLegacyDOCDecoder drops ill-formed UTF-8 and NUL bytes. Chained
// transformers hold state, so each call gets its own.
func newLegacyDOCDecoder() transform.Transformer {
	return transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r == utf8.RuneError || r == 0
		})),
	)
}

// ExtractDOC is a best-effort reader for legacy Word binaries. It does not
// parse the compound file format; it reads the raw bytes as text and discards
// whatever is not valid UTF-8, so output from real .doc files is noisy.
func ExtractDOC(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}

	decoded, _, err := transform.Bytes(newLegacyDOCDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode legacy document: %w", err)
	}
	return string(decoded), nil
}
