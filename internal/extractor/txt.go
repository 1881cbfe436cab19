package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// byteOrderMarks maps a leading BOM to the encoding it announces.
var byteOrderMarks = []struct {
	mark []byte
	enc  encoding.Encoding
}{
	{mark: []byte{0xEF, 0xBB, 0xBF}, enc: unicode.UTF8BOM},
	{mark: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{mark: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// ExtractTXT decodes a plain text file. A UTF-8 or UTF-16 byte order mark
// selects the encoding; otherwise valid UTF-8 is used as is and anything else
// is read as Windows-1252. Line endings are normalized to "\n".
func ExtractTXT(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty text file")
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file: %w", err)
	}
	return normalizeNewlines(text), nil
}

func decodeText(data []byte) (string, error) {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(data, bom.mark) {
			return bom.enc.NewDecoder().String(string(data))
		}
	}

	if utf8.Valid(data) {
		return string(data), nil
	}
	return charmap.Windows1252.NewDecoder().String(string(data))
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "")

func normalizeNewlines(text string) string {
	return newlines.Replace(text)
}
