// Package models defines core data structures for parsed documents, extracted
// topics, transcripts, and citations.
package models

import "time"

// SourceType identifies the kind of source content a piece of text came from.
// It steers prompt construction in the LLM extraction path.
type SourceType string

const (
	SourcePDF     SourceType = "pdf"
	SourceYouTube SourceType = "youtube"
	SourcePodcast SourceType = "podcast"
	SourceGeneral SourceType = "general"
)

// Section is a contiguous chunk of document content, split on blank-line
// boundaries. PageNumber is a rough attribution for PDFs (0 when unknown) and
// must not be relied on for precision.
type Section struct {
	Content    string `json:"content"`
	PageNumber int    `json:"page_number,omitempty"`
}

// ParsedDocument is the result of parsing a PDF/DOCX/TXT file. Content holds
// the normalized text, RawText the text as extracted, and Sections an ordered
// split of Content. Immutable after creation.
type ParsedDocument struct {
	Content  string    `json:"content"`
	RawText  string    `json:"raw_text"`
	Sections []Section `json:"sections"`
}

// ArgumentType distinguishes supporting claims from counterpoints.
type ArgumentType string

const (
	ArgumentSupport ArgumentType = "support"
	ArgumentCounter ArgumentType = "counter"
)

// Topic is a candidate debate subject found by the heuristic extractor.
// ID is a generated stable identifier; arguments link to it rather than to
// the display title.
type Topic struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Confidence    float64  `json:"confidence"`
	RelatedTopics []string `json:"related_topics,omitempty"`
}

// Argument is a sentence-level claim or counterpoint attributed to a topic.
// TopicTitle is carried for display; TopicID is the linkage key.
type Argument struct {
	TopicID    string       `json:"topic_id"`
	TopicTitle string       `json:"topic_title"`
	Text       string       `json:"text"`
	Type       ArgumentType `json:"type"`
	Confidence float64      `json:"confidence"`
}

// TopicArgument is an argument in the canonical output shape: a claim with
// optional supporting evidence text.
type TopicArgument struct {
	Claim    string `json:"claim"`
	Evidence string `json:"evidence,omitempty"`
}

// ExtractedTopic is the canonical topic shape produced by every extraction
// strategy (LLM and heuristic alike) and consumed at the API boundary.
type ExtractedTopic struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Confidence float64         `json:"confidence"`
	Arguments  []TopicArgument `json:"arguments,omitempty"`
}

// TranscriptSegment is one timed span of a transcript. Segments are ordered
// with non-decreasing Start. Caption-derived segments carry authoritative
// timestamps (confidence 0.9); segments produced by even-spacing after bulk
// transcription carry estimated timestamps only (confidence 0.8).
type TranscriptSegment struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// MediaMetadata describes an acquired media source. It is always populated;
// acquisition failures fall back to generic values rather than omitting it.
type MediaMetadata struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Duration     float64   `json:"duration"`
	Format       string    `json:"format"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Author       string    `json:"author,omitempty"`
	PublishDate  time.Time `json:"publish_date"`
}

// Citation is one recommended reading returned by the reading recommender.
type Citation struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}
