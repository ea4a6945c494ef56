package docparse

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
)

// parsePDF decodes PDF bytes under the parser's timeout, mapping failures to
// distinct, user-actionable reasons: encrypted, malformed, timeout, and
// "no extractable text" (scanned image-only PDFs).
func (p *Parser) parsePDF(content []byte) (*models.ParsedDocument, error) {
	timeout := p.ParseTimeout
	if timeout <= 0 {
		timeout = DefaultParseTimeout
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := extractPDFText(content)
		ch <- result{text, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		if strings.TrimSpace(res.text) == "" {
			return nil, errs.Unavailablef("no extractable text found in PDF; the file may contain only scanned images")
		}
		return buildDocument(res.text, true), nil
	case <-time.After(timeout):
		return nil, errs.Validationf("PDF text extraction timed out after %s; the file may be too complex", timeout)
	}
}

// extractPDFText pulls plain text from every page. The pdf library panics on
// some malformed inputs, so recovery folds those into a parse error.
func extractPDFText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Wrap(errs.KindValidation, fmt.Errorf("%v", r), "PDF appears to be corrupted or malformed")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			return "", errs.Validationf("PDF is encrypted or password-protected; remove the password and try again")
		}
		return "", errs.Wrap(errs.KindValidation, err, "PDF appears to be corrupted or malformed")
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal as long as other pages
			// yield text.
			continue
		}
		buf.WriteString(pageText)
		if i < numPages {
			buf.WriteString("\n\n")
		}
	}
	return buf.String(), nil
}
