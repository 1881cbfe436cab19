package extractor

// TruncationMarker is appended to text cut by Truncate.
const TruncationMarker = "\n\n[Document truncated for processing...]"

// Truncate caps text at limit characters (runes). Text at or under the limit
// is returned unchanged; longer text is cut to exactly limit characters and
// TruncationMarker is appended.
func Truncate(text string, limit int) string {
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + TruncationMarker
		}
		count++
	}
	return text
}
