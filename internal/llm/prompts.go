package llm

import (
	"fmt"

	"github.com/hyperjump/debatable/internal/models"
)

// topicSystemPrompt frames the extraction task and fixes the output contract.
const topicSystemPrompt = `You analyze source material and extract debatable topics from it.
Respond ONLY with a JSON array, no prose and no markdown fences. Each element:
{"title": "10-60 character debate topic", "summary": "50-150 word neutral summary of the disagreement", "confidence": 0.0-1.0}
Return between 3 and 5 topics. Titles must be debatable positions or questions, not bland subject labels.`

// sourceEmphasis tailors the user prompt to where the text came from.
var sourceEmphasis = map[models.SourceType]string{
	models.SourcePDF: "The text is from a document (report, paper, or article). " +
		"Favor topics around research findings, policy recommendations, and contested conclusions.",
	models.SourceYouTube: "The text is a video transcript. " +
		"Favor topics around claims the speaker makes, positions they take, and points a viewer might contest.",
	models.SourcePodcast: "The text is a podcast transcript. " +
		"Favor topics where hosts or guests disagree, hedge, or take opposing positions.",
	models.SourceGeneral: "Favor the most contested, consequential themes in the text.",
}

// buildTopicPrompt returns the user message for topic extraction over text
// that has already been truncated to the input bound.
func buildTopicPrompt(text string, source models.SourceType) string {
	emphasis, ok := sourceEmphasis[source]
	if !ok {
		emphasis = sourceEmphasis[models.SourceGeneral]
	}
	return fmt.Sprintf("%s\n\nSource text:\n%s", emphasis, text)
}
