package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/internal/topics"
)

const validTopicsJSON = `[
  {"title": "Is remote work here to stay?", "summary": "The text presents conflicting views on whether distributed teams outperform co-located ones, with productivity data cited on both sides of the argument.", "confidence": 0.85},
  {"title": "Should offices be abolished?", "summary": "A sharper framing of the same disagreement: proponents argue office leases are dead weight while critics maintain that serendipitous collaboration requires shared space.", "confidence": 0.7}
]`

func newTestExtractor(client Client) *Extractor {
	return NewExtractor(client, nil, 0, topics.DefaultOptions())
}

func TestExtractFromText_llmSuccess(t *testing.T) {
	mock := &MockClient{Response: validTopicsJSON}
	e := newTestExtractor(mock)
	got, err := e.ExtractFromText(context.Background(), "Remote work content.", models.SourceGeneral)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	if got[0].Title != "Is remote work here to stay?" {
		t.Errorf("unexpected title %q", got[0].Title)
	}
	if got[0].ID == "" {
		t.Error("topics should carry generated IDs")
	}
	if mock.Calls != 1 {
		t.Errorf("expected exactly one completion call, got %d", mock.Calls)
	}
}

func TestExtractFromText_fencedResponse(t *testing.T) {
	mock := &MockClient{Response: "Sure! Here you go:\n```json\n" + validTopicsJSON + "\n```"}
	e := newTestExtractor(mock)
	got, err := e.ExtractFromText(context.Background(), "content", models.SourcePDF)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("fence recovery failed: got %d topics", len(got))
	}
}

func TestExtractFromText_emptyInputNoCall(t *testing.T) {
	mock := &MockClient{Response: validTopicsJSON}
	e := newTestExtractor(mock)
	got, err := e.ExtractFromText(context.Background(), "   ", models.SourceGeneral)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty input should yield empty slice, got %d", len(got))
	}
	if mock.Calls != 0 {
		t.Errorf("empty input must not reach the LLM, got %d calls", mock.Calls)
	}
}

func TestExtractFromText_fallbackOnLLMError(t *testing.T) {
	mock := &MockClient{Err: errors.New("connection reset")}
	e := newTestExtractor(mock)
	got, err := e.ExtractFromText(context.Background(), "Climate change is an important global issue.", models.SourceGeneral)
	if err != nil {
		t.Fatalf("fallback chain must absorb the LLM failure: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("fallback must produce a non-empty topic list")
	}
	for _, topic := range got {
		if topic.Title == "" || topic.Summary == "" {
			t.Errorf("fallback topic missing fields: %+v", topic)
		}
		if topic.Confidence < 0 || topic.Confidence > 1 {
			t.Errorf("confidence %v out of bounds", topic.Confidence)
		}
	}
}

func TestExtractFromText_fallbackOnGarbageResponse(t *testing.T) {
	mock := &MockClient{Response: "I'm sorry, I can't produce JSON today."}
	e := newTestExtractor(mock)
	got, err := e.ExtractFromText(context.Background(), "Climate change is an important global issue.", models.SourceYouTube)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Error("garbage LLM output should fall back to heuristic topics")
	}
}

func TestExtractFromText_truncatesInput(t *testing.T) {
	var seen string
	client := clientFunc(func(_ context.Context, req CompletionRequest) (string, error) {
		seen = req.User
		return validTopicsJSON, nil
	})
	e := NewExtractor(client, nil, 100, topics.DefaultOptions())
	long := strings.Repeat("x", 5000)
	if _, err := e.ExtractFromText(context.Background(), long, models.SourceGeneral); err != nil {
		t.Fatal(err)
	}
	if len(seen) > 400 {
		t.Errorf("input not truncated before prompting: prompt length %d", len(seen))
	}
}

// clientFunc adapts a function to the Client interface.
type clientFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f clientFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

func TestValidateTopics(t *testing.T) {
	longSummary := strings.Repeat("word ", 40)
	in := []models.ExtractedTopic{
		{Title: "Is this a valid debate topic?", Summary: longSummary, Confidence: 0.5},
		{Title: "short", Summary: longSummary, Confidence: 0.5},
		{Title: strings.Repeat("t", 80), Summary: longSummary, Confidence: 0.5},
		{Title: "Confidence is out of range here", Summary: longSummary, Confidence: 1.5},
		{Title: "Negative confidence gets dropped", Summary: longSummary, Confidence: -0.1},
		{Title: "Summary far too short to keep", Summary: "tiny", Confidence: 0.5},
	}
	got := ValidateTopics(in)
	if len(got) != 1 {
		t.Fatalf("got %d topics, want 1: %+v", len(got), got)
	}
	if got[0].Title != "Is this a valid debate topic?" {
		t.Errorf("wrong survivor: %q", got[0].Title)
	}
}
