package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/internal/topics"
)

const (
	// DefaultMaxInputChars bounds the text prefix sent to the model.
	DefaultMaxInputChars = 12000

	minTitleLen   = 10
	maxTitleLen   = 60
	minSummaryLen = 20
	maxSummaryLen = 1500
)

// Extractor extracts debate topics via an LLM, falling back to the local
// heuristic extractor when the LLM path fails for any reason.
type Extractor struct {
	client        Client
	logger        *zap.Logger
	maxInputChars int
	heuristicOpts topics.Options
}

// NewExtractor returns an Extractor using client for completions.
// maxInputChars <= 0 means DefaultMaxInputChars.
func NewExtractor(client Client, logger *zap.Logger, maxInputChars int, heuristicOpts topics.Options) *Extractor {
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if heuristicOpts.MaxTopics == 0 {
		heuristicOpts = topics.DefaultOptions()
	}
	return &Extractor{
		client:        client,
		logger:        logger,
		maxInputChars: maxInputChars,
		heuristicOpts: heuristicOpts,
	}
}

// rawTopic is the shape requested from the model.
type rawTopic struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}

// ExtractFromText asks the LLM for 3-5 debate topics over text. Empty text
// returns an empty slice with no network call. Any LLM-path failure (network,
// parse, empty candidate list) falls back to the heuristic extractor; only
// when that also fails does the caller see an error.
func (e *Extractor) ExtractFromText(ctx context.Context, text string, source models.SourceType) ([]models.ExtractedTopic, error) {
	if strings.TrimSpace(text) == "" {
		return []models.ExtractedTopic{}, nil
	}
	bounded := text
	if len(bounded) > e.maxInputChars {
		bounded = bounded[:e.maxInputChars]
	}

	extracted, llmErr := e.tryLLM(ctx, bounded, source)
	if llmErr == nil && len(extracted) > 0 {
		return extracted, nil
	}
	if llmErr != nil {
		e.logger.Warn("LLM topic extraction failed, falling back to heuristic extractor",
			zap.String("source", string(source)), zap.Error(llmErr))
	} else {
		e.logger.Warn("LLM returned no usable topics, falling back to heuristic extractor",
			zap.String("source", string(source)))
	}

	doc := &models.ParsedDocument{Content: text, RawText: text}
	res, err := topics.Extract(doc, e.heuristicOpts)
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), err, "failed to extract topics")
	}
	return topics.ToExtracted(res), nil
}

// tryLLM runs the primary extraction strategy: prompt, parse, validate.
func (e *Extractor) tryLLM(ctx context.Context, text string, source models.SourceType) ([]models.ExtractedTopic, error) {
	content, err := e.client.Complete(ctx, CompletionRequest{
		System:      topicSystemPrompt,
		User:        buildTopicPrompt(text, source),
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	raw, err := parseTopicArray(content)
	if err != nil {
		return nil, err
	}

	out := make([]models.ExtractedTopic, 0, len(raw))
	for _, rt := range raw {
		out = append(out, models.ExtractedTopic{
			ID:         uuid.NewString(),
			Title:      strings.TrimSpace(rt.Title),
			Summary:    strings.TrimSpace(rt.Summary),
			Confidence: rt.Confidence,
		})
	}
	return ValidateTopics(out), nil
}

// parseTopicArray parses the completion as a JSON array, recovering an array
// substring from surrounding prose or fences before giving up.
func parseTopicArray(content string) ([]rawTopic, error) {
	var raw []rawTopic
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		return raw, nil
	}
	candidate, ok := ExtractJSONArray(content)
	if !ok {
		return nil, errs.Malformedf(nil, "completion contained no JSON array")
	}
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, errs.Malformedf(err, "recovered JSON array failed to parse")
	}
	return raw, nil
}

// ValidateTopics drops topics with out-of-bounds titles, summaries, or
// confidences. Defensive validation against malformed model output; the
// heuristic fallback and templated topics are exempt by construction.
func ValidateTopics(in []models.ExtractedTopic) []models.ExtractedTopic {
	out := make([]models.ExtractedTopic, 0, len(in))
	for _, t := range in {
		if len(t.Title) < minTitleLen || len(t.Title) > maxTitleLen {
			continue
		}
		if len(t.Summary) < minSummaryLen || len(t.Summary) > maxSummaryLen {
			continue
		}
		if t.Confidence < 0 || t.Confidence > 1 {
			continue
		}
		out = append(out, t)
	}
	return out
}
