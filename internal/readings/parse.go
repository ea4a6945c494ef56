package readings

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/llm"
	"github.com/hyperjump/debatable/internal/models"
)

type rawCitation struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// tripleRe picks title/url/snippet fields out of near-JSON text when real
// parsing has failed. Field order inside an object is assumed stable.
var tripleRe = regexp.MustCompile(
	`"title"\s*:\s*"((?:[^"\\]|\\.)*)"[\s\S]*?"url"\s*:\s*"((?:[^"\\]|\\.)*)"[\s\S]*?"snippet"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// parseCitations recovers a citation list from a completion response.
// It tries a direct JSON parse, then a fenced-array extraction, then a
// field-by-field regex sweep before giving up.
func parseCitations(raw string) ([]models.Citation, error) {
	raw = strings.TrimSpace(raw)

	if cites, ok := decodeCitations(raw); ok {
		return cites, nil
	}
	if arr, ok := llm.ExtractJSONArray(raw); ok {
		if cites, ok := decodeCitations(arr); ok {
			return cites, nil
		}
	}
	if cites := regexCitations(raw); len(cites) > 0 {
		return cites, nil
	}
	return nil, errs.Malformedf(nil, "could not extract valid JSON from response")
}

func decodeCitations(s string) ([]models.Citation, bool) {
	var raws []rawCitation
	if err := json.Unmarshal([]byte(s), &raws); err != nil {
		return nil, false
	}
	cites := make([]models.Citation, 0, len(raws))
	for _, rc := range raws {
		if rc.Title == "" && rc.URL == "" {
			continue
		}
		c := newCitation(rc.Title, rc.URL, rc.Snippet)
		if rc.ID != "" {
			c.ID = rc.ID
		}
		cites = append(cites, c)
	}
	if len(cites) == 0 {
		return nil, false
	}
	return cites, true
}

func regexCitations(s string) []models.Citation {
	var cites []models.Citation
	for _, m := range tripleRe.FindAllStringSubmatch(s, -1) {
		cites = append(cites, newCitation(unescape(m[1]), unescape(m[2]), unescape(m[3])))
	}
	return cites
}

// unescape handles the JSON string escapes the regex path leaves behind.
func unescape(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
