package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates a PDF with no extractable text (scanned/image-only)
var ErrNoText = errors.New("no extractable text in PDF")

// ErrTooLarge indicates the file exceeds the configured size ceiling
var ErrTooLarge = errors.New("PDF exceeds maximum allowed size")

// Extractor extracts plain text from PDF documents
type Extractor struct {
	maxFileBytes int64
	maxTextChars int
}

// Result contains the extracted text and document metadata
type Result struct {
	Text      string // Text sent downstream (possibly a prefix)
	FullChars int    // Character count before truncation
	Pages     int
	Truncated bool
}

// NewExtractor creates a new extractor. maxFileBytes bounds the raw file
// size; maxTextChars bounds how much text is passed to claim extraction
// (LLM context is the scarce resource, not disk).
func NewExtractor(maxFileBytes int64, maxTextChars int) *Extractor {
	if maxFileBytes <= 0 {
		maxFileBytes = 200 << 20
	}
	if maxTextChars <= 0 {
		maxTextChars = 8000
	}
	return &Extractor{
		maxFileBytes: maxFileBytes,
		maxTextChars: maxTextChars,
	}
}

// Extract parses the PDF bytes and returns the text content page by page
func (e *Extractor) Extract(data []byte) (*Result, error) {
	if int64(len(data)) > e.maxFileBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), e.maxFileBytes)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse PDF: %w", err)
	}

	var builder strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not sink the document
			continue
		}

		text = strings.TrimSpace(text)
		if text != "" {
			builder.WriteString(text)
			builder.WriteString("\n")
		}
	}

	full := normalizeText(builder.String())
	if !hasReadableText(full) {
		return nil, ErrNoText
	}

	result := &Result{
		Text:      full,
		FullChars: len(full),
		Pages:     pages,
	}

	if len(full) > e.maxTextChars {
		result.Text = truncateOnBoundary(full, e.maxTextChars)
		result.Truncated = true
	}

	return result, nil
}

// normalizeText collapses runs of whitespace left behind by PDF layout
func normalizeText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	lastSpace := false
	for _, r := range text {
		if r == '\n' {
			builder.WriteRune('\n')
			lastSpace = true
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				builder.WriteRune(' ')
			}
			lastSpace = true
			continue
		}
		builder.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimSpace(builder.String())
}

// hasReadableText reports whether the text contains enough letters to be
// worth analyzing. Image-only PDFs extract as empty or whitespace/garbage.
func hasReadableText(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters++
		}
		if letters >= 20 {
			return true
		}
	}
	return false
}

// truncateOnBoundary cuts text at maxChars, backing up to the nearest
// word boundary so the LLM does not see a split word. The cut never
// lands inside a multi-byte rune.
func truncateOnBoundary(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	end := maxChars
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}

	cut := text[:end]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > maxChars/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
