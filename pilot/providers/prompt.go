package providers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/postpilothq/postpilot/pilot/domain"
)

const singlePostSystemPrompt = `You are a social media ghostwriter.
Write exactly one post ready to publish.

RULES:
- At most 280 characters.
- At most ONE hashtag, placed naturally.
- No numbering, no quotes around the post, no commentary.
- Write in the requested language and tone only.`

const batchSystemPrompt = `You are a social media ghostwriter.
Write several distinct candidate posts for the user to choose from.

RULES:
- Each post at most 280 characters.
- Each post contains 1-2 hashtags, placed naturally.
- Posts must differ meaningfully from each other, not rephrasings.
- No numbering, no quotes around the posts, no commentary.
- Write in the requested language and tone only.`

func buildSinglePrompt(topic, language string, tone domain.Tone) string {
	return fmt.Sprintf("Topic: %s\nLanguage: %s\nTone: %s\n\nWrite the post now.", topic, language, tone)
}

func buildBatchPrompt(topics []string, language string, tone domain.Tone, count int) string {
	return fmt.Sprintf("Topics: %s\nLanguage: %s\nTone: %s\n\nWrite %d candidate posts now.",
		strings.Join(topics, ", "), language, tone, count)
}

// sanitizeCandidate enforces the output contract on a single generated
// post. Violations surface as MalformedResponseError so callers treat them
// like any other generation failure.
func sanitizeCandidate(provider, text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"")
	if text == "" {
		return "", &domain.MalformedResponseError{Provider: provider, Reason: "empty post"}
	}
	if n := utf8.RuneCountInString(text); n > domain.MaxPostLength {
		return "", &domain.MalformedResponseError{
			Provider: provider,
			Reason:   fmt.Sprintf("post is %d characters, limit is %d", n, domain.MaxPostLength),
		}
	}
	return text, nil
}
