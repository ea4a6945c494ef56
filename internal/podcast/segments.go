package podcast

import (
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/pkg/utils"
)

// estimatedConfidence marks segments whose timestamps were estimated by even
// spacing rather than reported by the transcription service.
const estimatedConfidence = 0.8

// estimateSegments splits the transcript into sentences and distributes the
// episode duration evenly across them. The resulting timestamps are
// approximations; consumers must not present them as authoritative.
func estimateSegments(transcript string, durationSeconds float64) []models.TranscriptSegment {
	sentences := utils.SplitSentences(transcript)
	if len(sentences) == 0 {
		return nil
	}
	if durationSeconds <= 0 {
		durationSeconds = assumedDurationSeconds
	}
	per := durationSeconds / float64(len(sentences))
	segments := make([]models.TranscriptSegment, len(sentences))
	for i, s := range sentences {
		segments[i] = models.TranscriptSegment{
			Text:       s,
			Start:      float64(i) * per,
			End:        float64(i+1) * per,
			Confidence: estimatedConfidence,
		}
	}
	return segments
}

// episodeDurationSeconds reads itunes:duration, accepting plain seconds,
// MM:SS, and HH:MM:SS forms. Returns 0 when absent or unparseable.
func episodeDurationSeconds(item *gofeed.Item) float64 {
	if item.ITunesExt == nil || item.ITunesExt.Duration == "" {
		return 0
	}
	raw := strings.TrimSpace(item.ITunesExt.Duration)
	parts := strings.Split(raw, ":")
	if len(parts) == 1 {
		if secs, err := strconv.ParseFloat(parts[0], 64); err == nil {
			return secs
		}
		return 0
	}
	var total float64
	for _, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}
