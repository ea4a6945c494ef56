// Package docparse converts PDF, DOCX, and TXT file content into plain text
// with a coarse section list. Parsing is a pure transform over the provided
// bytes: no network access, no filesystem writes.
package docparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/pkg/utils"
)

const (
	// DefaultMaxSizeMB is the default upload size cap.
	DefaultMaxSizeMB = 10
	// DefaultParseTimeout bounds PDF text extraction.
	DefaultParseTimeout = 30 * time.Second
	// sectionsPerPage is the heuristic used to attribute sections to PDF
	// pages. Page numbers are rough; callers must not rely on them for
	// precision.
	sectionsPerPage = 3
)

// blankLinesRe matches one or more blank lines (section boundaries).
var blankLinesRe = regexp.MustCompile(`\n\s*\n+`)

// Parser parses document bytes into a ParsedDocument.
type Parser struct {
	// MaxSizeMB rejects inputs larger than this many megabytes before any
	// decoding. Zero means DefaultMaxSizeMB.
	MaxSizeMB int
	// ParseTimeout bounds PDF extraction. Zero means DefaultParseTimeout.
	ParseTimeout time.Duration
}

// NewParser returns a Parser with default limits.
func NewParser() *Parser {
	return &Parser{MaxSizeMB: DefaultMaxSizeMB, ParseTimeout: DefaultParseTimeout}
}

// Parse extracts text from content based on the declared extension
// (".pdf", ".docx", ".txt"; case-insensitive, leading dot optional).
// Oversized input and unsupported extensions fail with a validation error
// before any decoding is attempted.
func (p *Parser) Parse(content []byte, ext string) (*models.ParsedDocument, error) {
	maxMB := p.MaxSizeMB
	if maxMB <= 0 {
		maxMB = DefaultMaxSizeMB
	}
	if len(content) > maxMB*1024*1024 {
		return nil, errs.Validationf("file exceeds the %dMB size limit", maxMB)
	}

	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "pdf":
		return p.parsePDF(content)
	case "docx":
		text, err := extractDOCX(content)
		if err != nil {
			return nil, err
		}
		return buildDocument(text, false), nil
	case "txt":
		return buildDocument(extractPlain(content), false), nil
	default:
		return nil, errs.Validationf("unsupported file type %q: expected .pdf, .docx, or .txt", ext)
	}
}

// buildDocument normalizes text and splits it into sections on blank-line
// boundaries. When paged is true, sections are attributed to pages in groups
// of sectionsPerPage.
func buildDocument(raw string, paged bool) *models.ParsedDocument {
	content := utils.NormalizeWhitespace(raw)
	doc := &models.ParsedDocument{
		Content: content,
		RawText: raw,
	}
	for _, chunk := range blankLinesRe.Split(content, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		section := models.Section{Content: chunk}
		if paged {
			section.PageNumber = len(doc.Sections)/sectionsPerPage + 1
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}
