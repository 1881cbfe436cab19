// Package extractor turns uploaded documents into plain text.
//
// The set of formats is closed: callers obtain a Format through ParseFormat,
// so an unsupported extension is rejected before any file is read.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	PDF  Format = "pdf"
	DOCX Format = "docx"
	DOC  Format = "doc"
	TXT  Format = "txt"
)

// Formats lists every supported format in display order.
var Formats = []Format{TXT, PDF, DOC, DOCX}

var descriptions = map[Format]string{
	PDF:  "Portable Document Format",
	DOC:  "Microsoft Word Document (legacy)",
	DOCX: "Microsoft Word Document",
	TXT:  "Plain Text File",
}

var decoders = map[Format]func([]byte) (string, error){
	PDF:  ExtractPDF,
	DOCX: ExtractDOCX,
	DOC:  ExtractDOC,
	TXT:  ExtractTXT,
}

// ErrNoText is returned when a document parses but yields only whitespace.
var ErrNoText = errors.New("no text could be extracted")

// Error is an extraction failure for a single document.
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Description is the human-readable name of the format.
func (f Format) Description() string {
	return descriptions[f]
}

// ParseFormat maps a file extension, with or without the leading dot and in
// any case, to a supported Format.
func ParseFormat(ext string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimPrefix(ext, ".")))
	_, ok := decoders[f]
	return f, ok
}

// FormatOf returns the Format for a filename's extension.
func FormatOf(filename string) (Format, bool) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", false
	}
	return ParseFormat(ext)
}

// Extractor reads a stored document and returns its text.
type Extractor interface {
	Extract(path string, format Format) (string, error)
}

type fileExtractor struct{}

func New() Extractor {
	return fileExtractor{}
}

func (fileExtractor) Extract(path string, format Format) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Format: format, Err: err}
	}
	return ExtractBytes(data, format)
}

// ExtractBytes decodes data as the given format. Parser panics, which the
// third-party PDF reader raises on some malformed inputs, are returned as
// errors.
func ExtractBytes(data []byte, format Format) (text string, err error) {
	decode, ok := decoders[format]
	if !ok {
		return "", &Error{Format: format, Err: fmt.Errorf("unsupported format")}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{Format: format, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	text, err = decode(data)
	if err != nil {
		return "", &Error{Format: format, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Format: format, Err: ErrNoText}
	}
	return text, nil
}
