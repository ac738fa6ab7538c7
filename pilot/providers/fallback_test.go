package providers

import (
	"strings"
	"testing"
)

func TestFallbackCandidatesCyclesTopics(t *testing.T) {
	out := FallbackCandidates([]string{"go", "ai"}, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(out))
	}
	if !strings.Contains(out[0], "go") || !strings.Contains(out[1], "ai") || !strings.Contains(out[2], "go") {
		t.Fatalf("expected topics to cycle, got %v", out)
	}
}

func TestFallbackCandidatesWithoutTopics(t *testing.T) {
	out := FallbackCandidates(nil, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	for _, c := range out {
		if c == "" {
			t.Fatal("expected non-empty generic placeholder")
		}
	}
}

func TestFallbackCandidatesMinimumCount(t *testing.T) {
	if out := FallbackCandidates([]string{"go"}, 0); len(out) != 1 {
		t.Fatalf("expected at least 1 candidate, got %d", len(out))
	}
}

func TestHashtagForMultiWordTopic(t *testing.T) {
	if got := hashtagFor("machine learning"); got != "#MachineLearning" {
		t.Fatalf("unexpected hashtag %q", got)
	}
}
