package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/postpilothq/postpilot/pilot/domain"
)

// MemoryProfileRepository holds the single user profile in memory.
type MemoryProfileRepository struct {
	mu      sync.RWMutex
	profile domain.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profile: domain.Profile{
			Language: domain.DefaultLanguage,
			Tone:     domain.ToneProfessional,
		},
	}
}

func (r *MemoryProfileRepository) Get(ctx context.Context) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.profile
	p.Topics = append([]string(nil), r.profile.Topics...)
	return p, nil
}

func (r *MemoryProfileRepository) AddTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.ErrEmptyTopic
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.profile.Topics {
		if strings.EqualFold(t, topic) {
			return domain.ErrDuplicateTopic
		}
	}
	r.profile.Topics = append(r.profile.Topics, topic)
	return nil
}

func (r *MemoryProfileRepository) RemoveTopic(ctx context.Context, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.profile.Topics {
		if strings.EqualFold(t, topic) {
			r.profile.Topics = append(r.profile.Topics[:i], r.profile.Topics[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryProfileRepository) SetLanguage(ctx context.Context, language string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile.Language = language
	return nil
}

func (r *MemoryProfileRepository) SetTone(ctx context.Context, tone domain.Tone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile.Tone = tone
	return nil
}

func (r *MemoryProfileRepository) SetAutoPilot(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile.AutoPilotEnabled = enabled
	return nil
}
