// Package podcast resolves a podcast RSS feed to an episode, downloads its
// audio enclosure, transcribes it, and produces a transcript with estimated
// timestamps. The temporary audio file is removed on every exit path.
package podcast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/internal/transcribe"
)

const (
	// DefaultMaxAudioMB is the upload limit of the transcription service.
	DefaultMaxAudioMB = 25
	// minTranscriptChars is the minimum transcription length considered
	// usable for topic extraction.
	minTranscriptChars = 50
	// assumedDurationSeconds is used for timestamp estimation when the feed
	// does not declare an episode duration.
	assumedDurationSeconds = 1800
)

// Acquisition is the result of resolving a podcast episode.
type Acquisition struct {
	EpisodeTitle      string
	PodcastTitle      string
	Transcript        string
	ContextualContent string
	AudioURL          string
	Segments          []models.TranscriptSegment
	Metadata          models.MediaMetadata
}

// Acquirer downloads an episode's audio and transcribes it.
type Acquirer struct {
	httpClient  *http.Client
	transcriber transcribe.Transcriber
	logger      *zap.Logger
	maxAudioMB  int
}

// NewAcquirer returns an Acquirer using t for transcription.
func NewAcquirer(t transcribe.Transcriber, timeout time.Duration, maxAudioMB int, logger *zap.Logger) *Acquirer {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if maxAudioMB <= 0 {
		maxAudioMB = DefaultMaxAudioMB
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{
		httpClient:  &http.Client{Timeout: timeout},
		transcriber: t,
		logger:      logger,
		maxAudioMB:  maxAudioMB,
	}
}

// Acquire parses the feed at rssURL, selects the episode at episodeIndex
// (0 = most recent), downloads its audio, and transcribes it. Timestamps on
// the returned segments are estimates produced by distributing the episode
// duration evenly over sentences; they are not authoritative.
func (a *Acquirer) Acquire(ctx context.Context, rssURL string, episodeIndex int) (*Acquisition, error) {
	u, err := url.Parse(rssURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errs.Validationf("invalid RSS URL: %q", rssURL)
	}

	parser := gofeed.NewParser()
	parser.Client = a.httpClient
	feed, err := parser.ParseURLWithContext(rssURL, ctx)
	if err != nil {
		return nil, errs.Transientf(err, "parse RSS feed")
	}
	if len(feed.Items) == 0 {
		return nil, errs.Unavailablef("no episodes found in feed %q", feed.Title)
	}
	if episodeIndex < 0 || episodeIndex >= len(feed.Items) {
		return nil, errs.Validationf("episode index %d out of range: feed has %d episodes", episodeIndex, len(feed.Items))
	}

	item := feed.Items[episodeIndex]
	audioURL := enclosureAudioURL(item)
	if audioURL == "" {
		return nil, errs.Unavailablef("no episodes with audio: episode %q has no audio enclosure", item.Title)
	}

	audioPath, err := a.downloadAudio(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	// Hard invariant: the temp file never outlives this call, regardless of
	// which path exits.
	defer func() {
		if rmErr := os.Remove(audioPath); rmErr != nil && !os.IsNotExist(rmErr) {
			a.logger.Warn("failed to remove temp audio file", zap.String("path", audioPath), zap.Error(rmErr))
		}
	}()

	transcript, err := a.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe episode: %w", err)
	}
	transcript = strings.TrimSpace(transcript)
	if len(transcript) < minTranscriptChars {
		return nil, errs.Unavailablef("transcript is too short to extract topics (%d chars)", len(transcript))
	}

	duration := episodeDurationSeconds(item)
	segments := estimateSegments(transcript, duration)
	meta := buildMetadata(feed, item, audioURL, duration)

	return &Acquisition{
		EpisodeTitle:      item.Title,
		PodcastTitle:      feed.Title,
		Transcript:        transcript,
		ContextualContent: contextualContent(feed.Title, item.Title, item.Description, transcript),
		AudioURL:          audioURL,
		Segments:          segments,
		Metadata:          meta,
	}, nil
}

// downloadAudio streams the enclosure to a temp file, aborting once the
// transcription service's size limit is exceeded. The caller owns the file.
func (a *Acquirer) downloadAudio(ctx context.Context, audioURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", errs.Transientf(err, "build audio request")
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", errs.Transientf(err, "download episode audio")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errs.Transientf(fmt.Errorf("status %d", resp.StatusCode), "download episode audio")
	}

	maxBytes := int64(a.maxAudioMB) * 1024 * 1024
	tmp, err := os.CreateTemp("", "debatable-audio-*"+audioExt(audioURL))
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	written, err := io.Copy(tmp, io.LimitReader(resp.Body, maxBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", errs.Transientf(err, "save episode audio")
	}
	if written > maxBytes {
		_ = os.Remove(tmp.Name())
		return "", errs.Validationf("episode audio exceeds the %dMB transcription limit; try a shorter episode", a.maxAudioMB)
	}
	return tmp.Name(), nil
}

// enclosureAudioURL returns the first audio enclosure URL, or "".
func enclosureAudioURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if enc.Type == "" || strings.HasPrefix(enc.Type, "audio/") {
			return enc.URL
		}
	}
	return ""
}

// audioExt guesses a file extension from the enclosure URL so the
// transcription service can identify the container format.
func audioExt(audioURL string) string {
	if u, err := url.Parse(audioURL); err == nil {
		path := u.Path
		if idx := strings.LastIndex(path, "."); idx >= 0 && len(path)-idx <= 5 {
			return path[idx:]
		}
	}
	return ".mp3"
}

// contextualContent joins the non-empty metadata fields and transcript so
// downstream extraction sees show and episode context.
func contextualContent(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func buildMetadata(feed *gofeed.Feed, item *gofeed.Item, audioURL string, duration float64) models.MediaMetadata {
	meta := models.MediaMetadata{
		Title:       item.Title,
		Description: item.Description,
		Duration:    duration,
		Format:      "audio",
		URL:         audioURL,
	}
	if item.PublishedParsed != nil {
		meta.PublishDate = *item.PublishedParsed
	}
	if item.ITunesExt != nil && item.ITunesExt.Author != "" {
		meta.Author = item.ITunesExt.Author
	} else if feed.ITunesExt != nil {
		meta.Author = feed.ITunesExt.Author
	}
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		meta.ThumbnailURL = item.ITunesExt.Image
	} else if feed.Image != nil {
		meta.ThumbnailURL = feed.Image.URL
	}
	if meta.Title == "" {
		meta.Title = "Podcast Episode"
	}
	return meta
}
