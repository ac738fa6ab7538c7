package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTopics means generation was requested with no configured
	// topics. The manual path surfaces an advisory; the auto-pilot cycle
	// skips silently.
	ErrEmptyTopics = errors.New("no topics configured")

	ErrEmptyTopic     = errors.New("topic must not be empty")
	ErrDuplicateTopic = errors.New("topic already present")
	ErrPostNotFound   = errors.New("post not found")
)

// GenerationError wraps any failure of the content provider: network
// errors, API rejections, timeouts.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider answered but the payload broke
// the output contract (empty text, over-length, unparseable JSON). Treated
// exactly like a GenerationError by every caller.
type MalformedResponseError struct {
	Provider string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned malformed content: %s", e.Provider, e.Reason)
}
