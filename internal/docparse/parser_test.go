package docparse

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/hyperjump/debatable/internal/errs"
)

// makeDOCX builds a minimal .docx archive with one <w:t> node per paragraph.
func makeDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p w:rsidR="00000000"><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)
	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParse_txt(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse([]byte("First paragraph.\n\nSecond paragraph.\n\n\nThird."), "txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(doc.Sections))
	}
	if doc.Sections[0].Content != "First paragraph." {
		t.Errorf("unexpected first section: %q", doc.Sections[0].Content)
	}
	if doc.Sections[0].PageNumber != 0 {
		t.Error("txt sections should have no page attribution")
	}
	// Sections joined on blank lines reconstruct the content.
	var parts []string
	for _, s := range doc.Sections {
		parts = append(parts, s.Content)
	}
	if strings.Join(parts, "\n\n") != doc.Content {
		t.Error("sections do not reconstruct content")
	}
}

func TestParse_txtInvalidUTF8(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse([]byte{'o', 'k', 0xff, 0xfe}, ".txt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc.Content, "ok") {
		t.Errorf("valid prefix lost: %q", doc.Content)
	}
}

func TestParse_docx(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(makeDOCX(t, "Hello world.", "Second paragraph."), "docx")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Content, "Hello world.") {
		t.Errorf("missing text: %q", doc.Content)
	}
	if len(doc.Sections) != 2 {
		t.Errorf("got %d sections, want 2", len(doc.Sections))
	}
}

func TestParse_docxNotAZip(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte("plainly not a zip"), "docx")
	if !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestParse_unsupportedExtension(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte("data"), ".xlsx")
	if err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("expected unsupported file type error, got %v", err)
	}
	if !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("expected validation kind, got %v", errs.KindOf(err))
	}
}

func TestParse_oversizeRejectedBeforeParsing(t *testing.T) {
	p := &Parser{MaxSizeMB: 10}
	// 15MB of garbage that would fail PDF parsing; the size gate must trip
	// first and report a validation failure, not a parse failure.
	big := bytes.Repeat([]byte{0x42}, 15*1024*1024)
	_, err := p.Parse(big, "pdf")
	if !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "10MB") {
		t.Errorf("error should name the limit: %v", err)
	}
}

func TestParse_corruptedPDF(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte("%PDF-1.4 truncated garbage"), "pdf")
	if err == nil {
		t.Fatal("expected error for corrupted PDF")
	}
	if !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("expected validation kind, got %v", errs.KindOf(err))
	}
}

func TestBuildDocument_pageAttribution(t *testing.T) {
	raw := "a.\n\nb.\n\nc.\n\nd.\n\ne."
	doc := buildDocument(raw, true)
	if len(doc.Sections) != 5 {
		t.Fatalf("got %d sections", len(doc.Sections))
	}
	if doc.Sections[0].PageNumber != 1 || doc.Sections[2].PageNumber != 1 {
		t.Error("first three sections belong to page 1")
	}
	if doc.Sections[3].PageNumber != 2 {
		t.Errorf("fourth section page = %d, want 2", doc.Sections[3].PageNumber)
	}
}

func TestParse_emptyInput(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(nil, "txt")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Content != "" || len(doc.Sections) != 0 {
		t.Errorf("empty input should yield empty document, got %+v", doc)
	}
}
