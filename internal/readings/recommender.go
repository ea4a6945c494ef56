// Package readings turns an expert name and a topic into a short reading
// list of web citations, backed by a search-grounded completion API.
package readings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/llm"
	"github.com/hyperjump/debatable/internal/models"
)

// citationsPerExpert is the number of readings requested and returned for
// each expert.
const citationsPerExpert = 3

const systemPrompt = `You are a research assistant. Given an expert's name and a debate topic,
return exactly 3 real articles, papers, or essays by or about that expert that
are relevant to the topic. Respond with ONLY a JSON array of objects with the
keys "title", "url", and "snippet". No prose, no markdown.`

// ExpertReadings is the per-expert result of a fan-out recommendation.
// Err is set when that expert's lookup failed; Citations then holds
// placeholder readings so the caller always has something to render.
type ExpertReadings struct {
	Expert    string            `json:"expert"`
	Citations []models.Citation `json:"citations"`
	Err       string            `json:"error,omitempty"`
}

// Recommender fetches suggested readings for debate experts.
type Recommender struct {
	client llm.Client
	model  string
	logger *zap.Logger
}

// NewRecommender returns a Recommender using client for lookups. The model
// may be empty when the client carries its own default.
func NewRecommender(client llm.Client, model string, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{client: client, model: model, logger: logger}
}

// Recommend returns exactly three citations for one expert on one topic.
func (r *Recommender) Recommend(ctx context.Context, expert, topic string) ([]models.Citation, error) {
	expert = strings.TrimSpace(expert)
	topic = strings.TrimSpace(topic)
	if expert == "" {
		return nil, errs.Validationf("expert name is required")
	}
	if topic == "" {
		return nil, errs.Validationf("topic is required")
	}

	raw, err := r.client.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		User:        fmt.Sprintf("Expert: %s\nTopic: %s", expert, topic),
		Model:       r.model,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindTransientIO, err, "fetch readings for %q", expert)
	}

	cites, err := parseCitations(raw)
	if err != nil {
		return nil, err
	}
	return cites, nil
}

// RecommendAll fans out one goroutine per expert and waits for all of them.
// The returned slice preserves the input order, and every expert gets an
// entry: a failed lookup is annotated with its error and filled with
// placeholder citations rather than dropped.
func (r *Recommender) RecommendAll(ctx context.Context, experts []string, topic string) []ExpertReadings {
	results := make([]ExpertReadings, len(experts))
	var wg sync.WaitGroup
	for i, expert := range experts {
		wg.Add(1)
		go func(i int, expert string) {
			defer wg.Done()
			cites, err := r.Recommend(ctx, expert, topic)
			if err != nil {
				r.logger.Warn("readings lookup failed, using placeholders",
					zap.String("expert", expert), zap.Error(err))
				results[i] = ExpertReadings{
					Expert:    expert,
					Citations: placeholderCitations(expert, topic),
					Err:       err.Error(),
				}
				return
			}
			results[i] = ExpertReadings{Expert: expert, Citations: cites}
		}(i, expert)
	}
	wg.Wait()
	return results
}

func newCitation(title, url, snippet string) models.Citation {
	return models.Citation{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(title),
		URL:     strings.TrimSpace(url),
		Snippet: strings.TrimSpace(snippet),
	}
}
