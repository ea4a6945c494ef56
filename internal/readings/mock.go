package readings

import (
	"fmt"
	"net/url"

	"github.com/hyperjump/debatable/internal/models"
)

// placeholderCitations are deterministic stand-ins shown when a live lookup
// fails. They are keyed on the expert and topic so repeated failures render
// the same list.
func placeholderCitations(expert, topic string) []models.Citation {
	slug := url.QueryEscape(topic)
	cites := make([]models.Citation, 0, citationsPerExpert)
	for i := 1; i <= citationsPerExpert; i++ {
		cites = append(cites, models.Citation{
			ID:      fmt.Sprintf("placeholder-%s-%d", slug, i),
			Title:   fmt.Sprintf("Suggested reading %d on %s", i, topic),
			URL:     fmt.Sprintf("https://scholar.google.com/scholar?q=%s+%s", url.QueryEscape(expert), slug),
			Snippet: fmt.Sprintf("A starting point for %s's perspective on %s.", expert, topic),
		})
	}
	return cites
}
