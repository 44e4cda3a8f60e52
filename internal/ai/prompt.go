package ai

import (
	"fmt"
	"strings"

	"github.com/wittyweekly/wire/internal/models"
)

// digestTemplate is the fixed instruction document skeleton. The topic list
// and the source-guidance block are filled in per request.
const digestTemplate = `Act as a witty, humorous, and knowledgeable newsletter editor.
Your task is to compile a weekly digest for the past 7 days based on the following selected topics: %s.

Guidelines:
1. **Tone**: Light, refreshing, humorous, but strictly factual. Avoid dry corporate speak. Make it feel like a smart friend texting you the updates.
2. **Structure**:
   - A catchy, pun-filled Title for this week's edition.
   - A brief, funny Intro.
   - Separate sections for each selected topic.
   - For each topic, pick the top 1-2 most significant news stories from the LAST WEEK.
   - If nothing major happened, mention a smaller interesting tidbit.
   - A "Fun Fact of the Week" at the end.
3. **Formatting**: Use Markdown. Use H2 (##) for section headers. Use bolding for emphasis.
4. **Constraints**: Keep it under 800 words total. Strictly English.
%s
You MUST use the Google Search tool to find the actual news from the last 7 days.`

const openSearchClause = `
5. **Sources**: Search the open web with no source bias.
`

const inboxClause = `You also have access to the reader's connected inbox through the %s tool. Use it to scan their recent newsletter subscriptions, and attribute any fact drawn from it in-line (e.g. "scanning your recent subscriptions, ...").
`

// BuildDigestPrompt composes the instruction document for one generation.
// Pure function, no I/O. Callers must not invoke it with an empty topic list;
// the API boundary rejects that before composing.
func BuildDigestPrompt(topics, preferredSources []string, customSources []models.CustomSource, useInbox bool) string {
	sourceBlock := openSearchClause
	if len(preferredSources) > 0 || len(customSources) > 0 || useInbox {
		sourceBlock = buildSourceGuidance(preferredSources, customSources, useInbox)
	}
	return fmt.Sprintf(digestTemplate, strings.Join(topics, ", "), sourceBlock)
}

// Tools returns the tool-enablement decision that pairs with the document:
// web search is always on, the inbox function only when requested.
func Tools(useInbox bool) ToolSet {
	return ToolSet{Inbox: useInbox}
}

func buildSourceGuidance(preferredSources []string, customSources []models.CustomSource, useInbox bool) string {
	b := strings.Builder{}
	b.WriteString("\n5. **Sources**:\n")

	if len(preferredSources) > 0 {
		b.WriteString(fmt.Sprintf("   - Prioritize coverage from these preferred sources: %s.\n",
			strings.Join(preferredSources, ", ")))
	}

	if len(customSources) > 0 {
		b.WriteString("   - Pay special attention to these reader-supplied sources:\n")
		for _, src := range customSources {
			b.WriteString(fmt.Sprintf("     - %s: %s\n", src.Kind.Noun(), src.Value))
		}
	}

	if useInbox {
		b.WriteString(fmt.Sprintf("   - "+inboxClause, InboxToolName))
	}

	return b.String()
}
