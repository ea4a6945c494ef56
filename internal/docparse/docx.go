package docparse

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/hyperjump/debatable/internal/errs"
)

// docxDocumentXMLPath is the path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> including attributed forms such as
// <w:t xml:space="preserve">. Matching text nodes directly keeps content
// extraction independent of paragraph/run attributes.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// wpClose marks paragraph ends; used to insert paragraph breaks so section
// splitting sees blank-line boundaries.
var wpClose = regexp.MustCompile(`</w:p>`)

// extractDOCX extracts raw text from .docx bytes (a ZIP containing OOXML).
// Formatting is discarded; paragraph boundaries become blank lines.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errs.Wrap(errs.KindValidation, err, "DOCX file is not a valid archive")
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errs.Wrap(errs.KindValidation, err, "DOCX: open %s", f.Name)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", errs.Wrap(errs.KindValidation, err, "DOCX: read %s", f.Name)
		}
		break
	}
	if docXML == nil {
		return "", errs.Validationf("DOCX: %s not found; the file may not be a Word document", docxDocumentXMLPath)
	}

	// Paragraph closes become blank lines before text-node extraction so the
	// document keeps its paragraph structure.
	marked := wpClose.ReplaceAllString(string(docXML), "\n\n")
	var b strings.Builder
	for _, para := range strings.Split(marked, "\n\n") {
		parts := wtTag.FindAllStringSubmatch(para, -1)
		if len(parts) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		for i, p := range parts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(p[1]))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
