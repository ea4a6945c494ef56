// Package youtube resolves a YouTube URL to a timestamped caption transcript
// and video title. Title acquisition is best-effort; caption acquisition
// failures are surfaced with distinguishable reasons so callers can show
// actionable guidance.
package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
)

const (
	// fallbackTitle is used whenever the real title cannot be scraped.
	fallbackTitle = "YouTube Video"
	// minTranscriptChars is the minimum transcript length considered usable
	// for topic extraction.
	minTranscriptChars = 50
)

// urlRe accepts watch, embed, shorts, and short-link forms.
var urlRe = regexp.MustCompile(`^https?://(?:www\.|m\.)?(?:youtube\.com/(?:watch\?|embed/|shorts/)|youtu\.be/)`)

// videoIDRe extracts the 11-character video ID from an accepted URL.
var videoIDRe = regexp.MustCompile(`(?:v=|embed/|shorts/|youtu\.be/)([A-Za-z0-9_-]{11})`)

// Acquisition is the result of resolving a YouTube URL.
type Acquisition struct {
	VideoID           string
	Title             string
	Transcript        string
	ContextualContent string
	Segments          []models.TranscriptSegment
	Metadata          models.MediaMetadata
}

// Acquirer fetches video pages and caption tracks.
type Acquirer struct {
	httpClient *http.Client
	logger     *zap.Logger
	// watchBase allows tests to point page fetches elsewhere; empty means
	// the real site.
	watchBase string
}

// NewAcquirer returns an Acquirer with the given fetch timeout.
func NewAcquirer(timeout time.Duration, logger *zap.Logger) *Acquirer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Acquire resolves url to its title and caption transcript. Invalid URLs fail
// before any network call. Caption failures are classified: transcripts
// disabled, no captions available, video unavailable/private, or a generic
// network failure. There is no automatic fallback to audio transcription;
// the podcast acquirer is the only audio-transcription consumer.
func (a *Acquirer) Acquire(ctx context.Context, url string) (*Acquisition, error) {
	if !urlRe.MatchString(url) {
		return nil, errs.Validationf("invalid URL: %q is not a YouTube watch, embed, shorts, or youtu.be link", url)
	}
	m := videoIDRe.FindStringSubmatch(url)
	if m == nil {
		return nil, errs.Validationf("could not extract a video ID from %q", url)
	}
	videoID := m[1]

	page, err := a.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	title := scrapeTitle(page)
	if title == "" {
		a.logger.Debug("title scrape failed, using fallback", zap.String("video_id", videoID))
		title = fallbackTitle
	}

	segments, err := a.fetchCaptions(ctx, page)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	transcript := sb.String()
	if len(transcript) < minTranscriptChars {
		return nil, errs.Unavailablef("transcript is too short to extract topics (%d chars)", len(transcript))
	}

	var duration float64
	if n := len(segments); n > 0 {
		duration = segments[n-1].End
	}
	return &Acquisition{
		VideoID:           videoID,
		Title:             title,
		Transcript:        transcript,
		ContextualContent: title + "\n\n" + transcript,
		Segments:          segments,
		Metadata: models.MediaMetadata{
			Title:    title,
			Duration: duration,
			Format:   "video",
			URL:      url,
		},
	}, nil
}

// fetchWatchPage downloads the video page HTML.
func (a *Acquirer) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	base := a.watchBase
	if base == "" {
		base = "https://www.youtube.com/watch?v="
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+videoID, nil)
	if err != nil {
		return "", errs.Transientf(err, "build watch page request")
	}
	req.Header.Set("Accept-Language", "en")
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", errs.Transientf(err, "fetch video page")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", errs.Unavailablef("video unavailable: the video may have been removed")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.Transientf(fmt.Errorf("status %d", resp.StatusCode), "fetch video page")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Transientf(err, "read video page")
	}
	return string(body), nil
}

// scrapeTitle pulls the video title from og:title or the page <title> tag.
// Returns "" on any failure; callers substitute the generic fallback.
func scrapeTitle(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && title != "" {
		return title
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSuffix(title, " - YouTube")
	return title
}
