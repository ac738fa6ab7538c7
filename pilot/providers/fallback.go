package providers

import (
	"fmt"
	"strings"
)

// FallbackCandidates builds placeholder posts for the manual path when the
// provider is unavailable. Callers receive these alongside an explicit
// fallback flag; nothing downstream inspects the text to detect failure.
func FallbackCandidates(topics []string, count int) []string {
	if count <= 0 {
		count = 1
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if len(topics) == 0 {
			out = append(out, "Working on something new. More soon. #StayTuned")
			continue
		}
		topic := topics[i%len(topics)]
		out = append(out, fmt.Sprintf("Sharing some thoughts on %s today. More soon. %s", topic, hashtagFor(topic)))
	}
	return out
}

func hashtagFor(topic string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, word := range strings.Fields(topic) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		if len(r) > 1 {
			b.WriteString(string(r[1:]))
		}
	}
	return b.String()
}
