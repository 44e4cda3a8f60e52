package newsletter

import (
	"fmt"
	"regexp"
	"strings"
)

// FallbackContent is used when the model returns no usable text.
const FallbackContent = "Sorry, I couldn't write the newsletter this time. Writer's block!"

var scriptTagRe = regexp.MustCompile(`<script[^>]*>[\s\S]*?<\/script>`)

var dangerousTags = []string{"script", "iframe", "object", "embed", "link", "meta"}

// cleanContent normalizes the model's markdown output before it is persisted.
// The preview renderer only handles headers, bullets and bold spans, so any
// embedded HTML is stripped rather than escaped.
func cleanContent(content string) string {
	content = scriptTagRe.ReplaceAllString(content, "")

	for _, tag := range dangerousTags {
		re := regexp.MustCompile(fmt.Sprintf(`<%s[^>]*>`, tag))
		content = re.ReplaceAllString(content, "")
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")

	return strings.TrimSpace(content)
}
