package domain

import "context"

// ContentProvider is the boundary to the hosted text-generation model.
// GeneratePost returns a single post (at most MaxPostLength characters, at
// most one hashtag); GenerateCandidates returns up to count candidates with
// 1-2 hashtags each. Both report failures as structured errors - callers
// must never inspect result content to detect failure.
type ContentProvider interface {
	Name() string
	GeneratePost(ctx context.Context, topic, language string, tone Tone) (string, error)
	GenerateCandidates(ctx context.Context, topics []string, language string, tone Tone, count int) ([]string, error)
}
