package topics

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hyperjump/debatable/internal/models"
)

// FallbackTopics returns last-resort templated topics derived from the source
// name, for use when extraction finds nothing that clears the confidence
// threshold. The output is deliberately low-confidence boilerplate; it exists
// so callers always have something to debate rather than an empty list.
func FallbackTopics(sourceName string) []models.ExtractedTopic {
	name := humanizeSourceName(sourceName)
	if name == "" {
		name = "this content"
	}
	return []models.ExtractedTopic{
		{
			ID:         uuid.NewString(),
			Title:      fmt.Sprintf("The Key Claims of %s", name),
			Summary:    fmt.Sprintf("The central claims made in %s and whether the presented reasoning holds up to scrutiny. Examining what the source asserts most strongly is a natural starting point for a structured debate.", name),
			Confidence: 0.4,
		},
		{
			ID:         uuid.NewString(),
			Title:      fmt.Sprintf("Implications of %s", name),
			Summary:    fmt.Sprintf("What follows if the arguments in %s are taken seriously: who is affected, what would change, and which consequences are most contested. Second-order effects often divide opinion more than the original claims.", name),
			Confidence: 0.35,
		},
		{
			ID:         uuid.NewString(),
			Title:      fmt.Sprintf("Counterarguments to %s", name),
			Summary:    fmt.Sprintf("The strongest objections a critic could raise against %s, including gaps in evidence, alternative explanations, and perspectives the source does not address.", name),
			Confidence: 0.35,
		},
	}
}

// humanizeSourceName strips extensions and separator characters so a file
// name like "climate_report-2024.pdf" reads as "climate report 2024".
func humanizeSourceName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// ToExtracted reshapes a heuristic extraction result into the canonical
// ExtractedTopic form, synthesizing a summary that weaves in up to the two
// strongest arguments for each topic.
func ToExtracted(res *Result) []models.ExtractedTopic {
	if res == nil {
		return nil
	}
	out := make([]models.ExtractedTopic, 0, len(res.Topics))
	for _, topic := range res.Topics {
		var topicArgs []models.Argument
		for _, a := range res.Arguments {
			if a.TopicID == topic.ID {
				topicArgs = append(topicArgs, a)
			}
		}
		et := models.ExtractedTopic{
			ID:         topic.ID,
			Title:      topic.Title,
			Summary:    synthesizeSummary(topic.Title, topicArgs),
			Confidence: topic.Confidence,
		}
		for _, a := range topicArgs {
			et.Arguments = append(et.Arguments, models.TopicArgument{Claim: a.Text})
		}
		out = append(out, et)
	}
	return out
}

// synthesizeSummary builds a readable summary from the topic title and its
// top arguments. Arguments arrive sorted by descending confidence.
func synthesizeSummary(title string, args []models.Argument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s emerges as a recurring theme in the source material.", title)
	woven := 0
	for _, a := range args {
		if woven >= 2 {
			break
		}
		switch a.Type {
		case models.ArgumentCounter:
			fmt.Fprintf(&b, " Critics counter: %q", a.Text)
		default:
			fmt.Fprintf(&b, " Supporters note: %q", a.Text)
		}
		woven++
	}
	if woven == 0 {
		b.WriteString(" The source offers several angles worth debating, from the strength of its evidence to the scope of its conclusions.")
	}
	return b.String()
}
