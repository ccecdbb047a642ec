// Package document turns uploaded résumé files into plain text. PDF, DOCX and
// plain-text inputs are supported.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyText means the document parsed but yielded no text, as with
	// scanned PDFs.
	ErrEmptyText = errors.New("no text could be extracted")
)

type Kind string

const (
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Detect classifies data by its magic bytes, using the file name to tell
// DOCX from other zip containers and to accept text files.
func Detect(name string, data []byte) Kind {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return KindPDF
	case bytes.HasPrefix(data, zipMagic):
		if ext == ".docx" || ext == "" {
			return KindDOCX
		}
		return KindUnknown
	case ext == ".pdf":
		return KindPDF
	case utf8.Valid(data) && !bytes.ContainsRune(data, 0):
		return KindText
	default:
		return KindUnknown
	}
}

// Extract returns the text of data. name is only used for type detection.
func Extract(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch kind := Detect(name, data); kind {
	case KindPDF:
		text, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	case KindText:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// ExtractFile reads path and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Extract(filepath.Base(path), data)
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}

	return b.String(), nil
}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	tabRe          = regexp.MustCompile(`<w:tab\s*/>`)
	tagRe          = regexp.MustCompile(`<[^>]*>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return xmlToText(doc.Editable().GetContent()), nil
}

// xmlToText flattens WordprocessingML into lines: paragraphs and breaks
// become newlines, tabs become tabs and every other tag is dropped.
func xmlToText(content string) string {
	content = paragraphEndRe.ReplaceAllString(content, "\n")
	content = tabRe.ReplaceAllString(content, "\t")
	content = tagRe.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
