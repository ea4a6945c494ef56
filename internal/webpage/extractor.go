// Package webpage fetches a web page and extracts its readable article text.
// Readability does the heavy lifting; a goquery pass over the stripped DOM
// covers pages readability cannot make sense of.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/pkg/utils"
)

// DefaultFetchTimeout bounds the page download when no timeout is configured.
const DefaultFetchTimeout = 15 * time.Second

const maxBodyBytes = 10 * 1024 * 1024

// noiseSelectors are removed before falling back to raw DOM text.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

// contentSelectors are tried in order for the main article container.
const contentSelectors = "article, main, [role=main], .content, .post-content, #content"

// Extraction is the readable text pulled from a page.
type Extraction struct {
	Title   string
	Content string
}

// Extractor downloads pages and extracts their readable text.
type Extractor struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewExtractor returns an Extractor with the given fetch timeout.
func NewExtractor(timeout time.Duration, logger *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Extract fetches pageURL and returns its readable text. Readability output
// is preferred; when it fails or comes back empty, the DOM is stripped of
// navigation noise and the main content container's text is used instead.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Extraction, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, errs.Validationf("invalid URL: %q", pageURL)
	}

	body, err := e.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if ex := e.viaReadability(body, parsed); ex != nil {
		return ex, nil
	}
	e.logger.Debug("readability produced no content, falling back to DOM extraction",
		zap.String("url", pageURL))

	ex, err := e.viaDOM(body)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternalExtraction, err, "extract page content")
	}
	if ex.Content == "" {
		return nil, errs.Unavailablef("no readable content found at %q", pageURL)
	}
	return ex, nil
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errs.Transientf(err, "build page request")
	}
	req.Header.Set("User-Agent", "debatable/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", errs.Transientf(err, "fetch page")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errs.Unavailablef("page not found: %s", pageURL)
	case resp.StatusCode != http.StatusOK:
		return "", errs.Transientf(fmt.Errorf("status %d", resp.StatusCode), "fetch page")
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", errs.Transientf(err, "read page body")
	}
	return string(raw), nil
}

// viaReadability returns nil when readability fails or yields no text.
func (e *Extractor) viaReadability(body string, pageURL *url.URL) *Extraction {
	article, err := readability.FromReader(strings.NewReader(body), pageURL)
	if err != nil {
		return nil
	}
	content := utils.NormalizeWhitespace(article.TextContent)
	if content == "" {
		return nil
	}
	return &Extraction{
		Title:   strings.TrimSpace(article.Title),
		Content: content,
	}
}

func (e *Extractor) viaDOM(body string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	container := doc.Find(contentSelectors).First()
	var parts []string
	collect := func(i int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	if container.Length() > 0 {
		container.Find("p, h1, h2, h3, h4, h5, h6, li").Each(collect)
		if len(parts) == 0 {
			collect(0, container)
		}
	} else {
		doc.Find("p, h1, h2, h3, h4, h5, h6, li").Each(collect)
	}

	return &Extraction{
		Title:   title,
		Content: utils.NormalizeWhitespace(strings.Join(parts, "\n\n")),
	}, nil
}
