package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// ExtractDOCX returns the text of every paragraph in the main document part,
// one paragraph per line. Paragraphs inside tables are included in reading
// order; tabs and line breaks inside a paragraph are kept.
func ExtractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX as ZIP: %w", err)
	}

	part, err := archive.Open(docxBody)
	if err != nil {
		return "", fmt.Errorf("%s not found in DOCX: %w", docxBody, err)
	}
	defer part.Close()

	paragraphs, err := readParagraphs(part)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", docxBody, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// readParagraphs emits one entry per w:p. A paragraph nested in a text box
// is emitted on its own, ahead of the paragraph that anchors it. Markup
// compatibility fallbacks repeat their Choice content and are skipped.
func readParagraphs(r io.Reader) ([]string, error) {
	var (
		paragraphs []string
		open       []*strings.Builder
		runDepth   int
		inText     bool
	)

	current := func() *strings.Builder {
		if len(open) == 0 {
			open = append(open, &strings.Builder{})
		}
		return open[len(open)-1]
	}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Fallback":
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "p":
				open = append(open, &strings.Builder{})
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				// Tab stops in paragraph properties share the element name.
				if runDepth > 0 {
					current().WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					current().WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current().String())
				open = open[:len(open)-1]
			}
		case xml.CharData:
			if inText {
				current().Write(el)
			}
		}
	}

	for _, b := range open {
		if b.Len() > 0 {
			paragraphs = append(paragraphs, b.String())
		}
	}
	return paragraphs, nil
}
