// Package pipeline orchestrates the full content-to-topics flow: acquire
// text from a source (file, YouTube, podcast, web page), extract debate
// topics from it, and fall back to generic placeholder topics when every
// extraction strategy fails. Callers always get some topic list back unless
// the source itself cannot be read.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/docparse"
	"github.com/hyperjump/debatable/internal/llm"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/internal/podcast"
	"github.com/hyperjump/debatable/internal/requestcache"
	"github.com/hyperjump/debatable/internal/topics"
	"github.com/hyperjump/debatable/internal/webpage"
	"github.com/hyperjump/debatable/internal/youtube"
)

// Pipeline wires the acquirers to the topic extractor.
type Pipeline struct {
	parser    *docparse.Parser
	youtube   *youtube.Acquirer
	podcast   *podcast.Acquirer
	webpage   *webpage.Extractor
	extractor *llm.Extractor
	cache     *requestcache.Cache
	logger    *zap.Logger
}

// New assembles a Pipeline. cache may be nil to disable duplicate detection.
func New(
	parser *docparse.Parser,
	yt *youtube.Acquirer,
	pod *podcast.Acquirer,
	web *webpage.Extractor,
	extractor *llm.Extractor,
	cache *requestcache.Cache,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		parser:    parser,
		youtube:   yt,
		podcast:   pod,
		webpage:   web,
		extractor: extractor,
		cache:     cache,
		logger:    logger,
	}
}

// ExtractFromFile parses an uploaded document and extracts topics from it.
// Repeated uploads of the same file within the cache window are processed
// anyway; the duplicate is only logged.
func (p *Pipeline) ExtractFromFile(ctx context.Context, name string, content []byte) ([]models.ExtractedTopic, error) {
	p.noteDuplicate(fmt.Sprintf("file:%s:%d", name, len(content)), name)

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	doc, err := p.parser.Parse(content, ext)
	if err != nil {
		return nil, err
	}

	source := models.SourceGeneral
	if ext == "pdf" {
		source = models.SourcePDF
	}
	return p.topicsFor(ctx, doc.Content, source, name)
}

// ExtractFromYouTube pulls a video's captions and extracts topics from them.
func (p *Pipeline) ExtractFromYouTube(ctx context.Context, url string) ([]models.ExtractedTopic, error) {
	p.noteDuplicate("youtube:"+url, url)

	acq, err := p.youtube.Acquire(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.topicsFor(ctx, acq.ContextualContent, models.SourceYouTube, acq.Title)
}

// ExtractFromPodcast transcribes a feed episode and extracts topics from it.
func (p *Pipeline) ExtractFromPodcast(ctx context.Context, rssURL string, episodeIndex int) ([]models.ExtractedTopic, error) {
	p.noteDuplicate(fmt.Sprintf("podcast:%s:%d", rssURL, episodeIndex), rssURL)

	acq, err := p.podcast.Acquire(ctx, rssURL, episodeIndex)
	if err != nil {
		return nil, err
	}
	return p.topicsFor(ctx, acq.ContextualContent, models.SourcePodcast, acq.EpisodeTitle)
}

// ExtractFromURL extracts the readable text of a web page and mines topics
// from it.
func (p *Pipeline) ExtractFromURL(ctx context.Context, url string) ([]models.ExtractedTopic, error) {
	p.noteDuplicate("url:"+url, url)

	ex, err := p.webpage.Extract(ctx, url)
	if err != nil {
		return nil, err
	}
	text := ex.Content
	if ex.Title != "" {
		text = ex.Title + "\n\n" + text
	}
	return p.topicsFor(ctx, text, models.SourceGeneral, ex.Title)
}

// errNoTopics routes an empty-but-successful extraction to the next strategy.
var errNoTopics = errors.New("extraction produced no topics")

// topicsFor runs topic extraction with placeholder topics as the last
// resort, so a readable source never produces an empty result. An extraction
// that succeeds with zero topics counts as a miss.
func (p *Pipeline) topicsFor(ctx context.Context, text string, source models.SourceType, sourceName string) ([]models.ExtractedTopic, error) {
	return AttemptInOrder(ctx, p.logger,
		Strategy[[]models.ExtractedTopic]{
			Name: "extract",
			Run: func(ctx context.Context) ([]models.ExtractedTopic, error) {
				out, err := p.extractor.ExtractFromText(ctx, text, source)
				if err == nil && len(out) == 0 {
					return nil, errNoTopics
				}
				return out, err
			},
		},
		Strategy[[]models.ExtractedTopic]{
			Name: "placeholder",
			Run: func(ctx context.Context) ([]models.ExtractedTopic, error) {
				return topics.FallbackTopics(sourceName), nil
			},
		},
	)
}

func (p *Pipeline) noteDuplicate(key, label string) {
	if p.cache == nil {
		return
	}
	if p.cache.Seen(key) {
		p.logger.Info("duplicate request within cache window", zap.String("source", label))
	}
}
