// Package topics implements the heuristic (non-LLM) debate topic extractor:
// lexical candidate generation, confidence scoring, bigram-similarity
// deduplication, and sentence-level claim/counterpoint classification.
// It performs no network calls and is deterministic for a fixed input.
package topics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hyperjump/debatable/internal/errs"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/pkg/utils"
)

const (
	// dedupeThreshold is the bigram similarity above which two candidate
	// titles are treated as the same topic.
	dedupeThreshold = 0.7
	// relevanceThreshold is the minimum sentence-to-title similarity for a
	// sentence to be considered when mining arguments.
	relevanceThreshold = 0.2
	// minCandidateLen skips candidates too short to be meaningful titles.
	minCandidateLen = 5
	// minWordLen is the shortest word counted for frequency candidates.
	minWordLen = 4
)

// claimMarkers flag sentences that assert a position.
var claimMarkers = []string{
	"should", "must", "need", "important", "significant", "crucial",
	"essential", "critical", "argue", "assert", "claim", "maintain", "contend",
}

// counterMarkers flag contrastive or opposing sentences.
var counterMarkers = []string{
	"however", "but", "although", "though", "contrary", "despite", "yet",
	"while", "on the other hand", "opponents", "critics", "challenge", "dispute",
}

// evidenceMarkers flag sentences that ground a claim in reasoning or data.
var evidenceMarkers = []string{
	"because", "since", "therefore", "thus", "consequently", "as a result",
	"research", "study", "evidence", "data", "statistics",
}

// wordRe matches lowercase-able word tokens (letters only).
var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

// phraseRe matches runs of 1-4 title-case words, a high-precision signal for
// proper nouns and named topics.
var phraseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t][A-Z][a-z]+){0,3}\b`)

// Options configures heuristic extraction. The zero value accepts every
// candidate and returns no topics (MaxTopics 0); use DefaultOptions for the
// standard configuration.
type Options struct {
	MinConfidence        float64
	MaxTopics            int
	ExtractCounterpoints bool
	Language             string
}

// DefaultOptions returns the standard extraction configuration.
func DefaultOptions() Options {
	return Options{
		MinConfidence:        0.6,
		MaxTopics:            5,
		ExtractCounterpoints: true,
		Language:             "english",
	}
}

// Result pairs accepted topics with the arguments mined for them. Arguments
// reference topics by generated ID, never by display title.
type Result struct {
	Topics    []models.Topic
	Arguments []models.Argument
}

// Extract produces ranked debate topics and sentence-level arguments from a
// parsed document. Empty input yields an empty result, not an error. Internal
// failures are wrapped as a single extraction error; callers never see raw
// panics.
func Extract(doc *models.ParsedDocument, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errs.Internalf(nil, "topic extraction failed: %v", r)
		}
	}()

	res = &Result{}
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return res, nil
	}

	content := doc.Content
	sentences := utils.SplitSentences(content)
	firstParagraph := firstParagraphOf(doc)
	contentLower := strings.ToLower(content)

	for _, cand := range candidateTopics(content) {
		if len(res.Topics) >= opts.MaxTopics {
			break
		}
		if len(cand) < minCandidateLen {
			continue
		}

		title := titleCase(cand)
		confidence := topicConfidence(cand, contentLower, firstParagraph)
		if confidence < opts.MinConfidence {
			continue
		}
		if i := duplicateOf(title, res.Topics); i >= 0 {
			// The near-match survives as a related title on the topic
			// that absorbed it.
			if title != res.Topics[i].Title && !containsString(res.Topics[i].RelatedTopics, title) {
				res.Topics[i].RelatedTopics = append(res.Topics[i].RelatedTopics, title)
			}
			continue
		}

		topic := models.Topic{
			ID:         uuid.NewString(),
			Title:      title,
			Confidence: confidence,
		}
		res.Topics = append(res.Topics, topic)
		res.Arguments = append(res.Arguments, mineArguments(topic, sentences, opts.ExtractCounterpoints)...)
	}

	sort.SliceStable(res.Topics, func(i, j int) bool {
		return res.Topics[i].Confidence > res.Topics[j].Confidence
	})
	sort.SliceStable(res.Arguments, func(i, j int) bool {
		return res.Arguments[i].Confidence > res.Arguments[j].Confidence
	})
	return res, nil
}

// candidateTopics returns candidate titles in priority order: capitalized
// multi-word phrases first (higher-precision signals), then words ranked by
// descending frequency.
func candidateTopics(content string) []string {
	var candidates []string

	seen := make(map[string]bool)
	for _, phrase := range phraseRe.FindAllString(content, -1) {
		key := strings.ToLower(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, phrase)
	}

	freq := make(map[string]int)
	var order []string
	for _, w := range wordRe.FindAllString(strings.ToLower(content), -1) {
		if len(w) < minWordLen {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}
	var frequent []string
	for _, w := range order {
		if freq[w] >= 2 && !seen[w] {
			frequent = append(frequent, w)
		}
	}
	// Stable: descending frequency, first-occurrence order on ties.
	sort.SliceStable(frequent, func(i, j int) bool {
		return freq[frequent[i]] > freq[frequent[j]]
	})
	return append(candidates, frequent...)
}

// topicConfidence scores a candidate by occurrence count, with a bonus when
// it appears in the document's opening paragraph.
func topicConfidence(candidate, contentLower, firstParagraph string) float64 {
	count := strings.Count(contentLower, strings.ToLower(candidate))
	confidence := 0.5 + 0.1*float64(count)
	if confidence > 0.95 {
		confidence = 0.95
	}
	if strings.Contains(strings.ToLower(firstParagraph), strings.ToLower(candidate)) {
		confidence += 0.1
	}
	return utils.Clamp01(confidence)
}

// duplicateOf returns the index of an already accepted topic whose title is
// too similar to title, or -1.
func duplicateOf(title string, accepted []models.Topic) int {
	for i, t := range accepted {
		if DiceSimilarity(title, t.Title) > dedupeThreshold {
			return i
		}
	}
	return -1
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// mineArguments selects sentences relevant to the topic and classifies them
// as supporting claims or counterpoints.
func mineArguments(topic models.Topic, sentences []string, counterpoints bool) []models.Argument {
	var args []models.Argument
	for _, sentence := range sentences {
		sim := DiceSimilarity(sentence, topic.Title)
		if sim <= relevanceThreshold {
			continue
		}
		lower := strings.ToLower(sentence)
		isClaim := containsAny(lower, claimMarkers)
		isCounter := containsAny(lower, counterMarkers)

		var typ models.ArgumentType
		switch {
		case isClaim:
			typ = models.ArgumentSupport
		case isCounter && counterpoints:
			typ = models.ArgumentCounter
		default:
			continue
		}

		confidence := 0.7 * sim
		if isClaim {
			confidence += 0.15
		}
		if containsAny(lower, evidenceMarkers) {
			confidence += 0.10
		}
		if confidence > 0.98 {
			confidence = 0.98
		}

		args = append(args, models.Argument{
			TopicID:    topic.ID,
			TopicTitle: topic.Title,
			Text:       sentence,
			Type:       typ,
			Confidence: confidence,
		})
	}
	return args
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// firstParagraphOf returns the document's opening paragraph, preferring the
// first section when present.
func firstParagraphOf(doc *models.ParsedDocument) string {
	if len(doc.Sections) > 0 {
		return doc.Sections[0].Content
	}
	if idx := strings.Index(doc.Content, "\n\n"); idx > 0 {
		return doc.Content[:idx]
	}
	return doc.Content
}

// titleCase capitalizes the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
