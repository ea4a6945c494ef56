package topics

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hyperjump/debatable/internal/models"
)

func TestFallbackTopics(t *testing.T) {
	got := FallbackTopics("climate_report-2024.pdf")
	if len(got) == 0 {
		t.Fatal("fallback must always return at least one topic")
	}
	for _, topic := range got {
		if topic.ID == "" || topic.Title == "" || topic.Summary == "" {
			t.Errorf("incomplete fallback topic: %+v", topic)
		}
		if topic.Confidence <= 0 || topic.Confidence > 0.5 {
			t.Errorf("fallback confidence %v should be low and positive", topic.Confidence)
		}
		if !strings.Contains(topic.Title, "climate report 2024") &&
			!strings.Contains(topic.Summary, "climate report 2024") {
			t.Errorf("source name not woven into topic: %+v", topic)
		}
	}
}

func TestFallbackTopics_emptyName(t *testing.T) {
	got := FallbackTopics("")
	if len(got) == 0 {
		t.Fatal("empty name still yields topics")
	}
	if !strings.Contains(got[0].Title, "this content") {
		t.Errorf("generic name expected: %q", got[0].Title)
	}
}

func TestToExtracted(t *testing.T) {
	topicID := uuid.NewString()
	res := &Result{
		Topics: []models.Topic{{ID: topicID, Title: "Universal Basic Income", Confidence: 0.8}},
		Arguments: []models.Argument{
			{TopicID: topicID, TopicTitle: "Universal Basic Income", Text: "UBI must be funded through taxation.", Type: models.ArgumentSupport, Confidence: 0.6},
			{TopicID: topicID, TopicTitle: "Universal Basic Income", Text: "However, critics dispute its affordability.", Type: models.ArgumentCounter, Confidence: 0.5},
			{TopicID: topicID, TopicTitle: "Universal Basic Income", Text: "A third, weaker point.", Type: models.ArgumentSupport, Confidence: 0.3},
			{TopicID: "other", TopicTitle: "Other", Text: "Unrelated.", Type: models.ArgumentSupport, Confidence: 0.9},
		},
	}
	got := ToExtracted(res)
	if len(got) != 1 {
		t.Fatalf("got %d extracted topics, want 1", len(got))
	}
	et := got[0]
	if et.ID != topicID || et.Title != "Universal Basic Income" || et.Confidence != 0.8 {
		t.Errorf("topic fields not carried over: %+v", et)
	}
	if len(et.Arguments) != 3 {
		t.Errorf("got %d arguments, want 3 (unrelated one excluded)", len(et.Arguments))
	}
	if !strings.Contains(et.Summary, "UBI must be funded") {
		t.Errorf("top argument not woven into summary: %q", et.Summary)
	}
	if !strings.Contains(et.Summary, "Critics counter") {
		t.Errorf("counterpoint phrasing missing: %q", et.Summary)
	}
	if strings.Contains(et.Summary, "third, weaker") {
		t.Errorf("summary should weave at most two arguments: %q", et.Summary)
	}
}

func TestToExtracted_nil(t *testing.T) {
	if got := ToExtracted(nil); got != nil {
		t.Errorf("nil result should map to nil, got %v", got)
	}
}
