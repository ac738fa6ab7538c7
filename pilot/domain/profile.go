package domain

import (
	"context"
	"fmt"
	"strings"
)

type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneHumorous      Tone = "humorous"
	ToneControversial Tone = "controversial"
	ToneInspirational Tone = "inspirational"
	ToneTechnical     Tone = "technical"
)

// DefaultLanguage is used when the profile has no language configured.
const DefaultLanguage = "English"

func ParseTone(s string) (Tone, error) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneProfessional:
		return ToneProfessional, nil
	case ToneCasual:
		return ToneCasual, nil
	case ToneHumorous:
		return ToneHumorous, nil
	case ToneControversial:
		return ToneControversial, nil
	case ToneInspirational:
		return ToneInspirational, nil
	case ToneTechnical:
		return ToneTechnical, nil
	}
	return "", fmt.Errorf("unsupported tone %q", s)
}

// Profile is the user configuration that parameterizes generation. The
// auto-pilot engine re-reads it at the start of every cycle, so mutations
// take effect on the next tick without restarting the loop.
type Profile struct {
	Topics           []string `json:"topics"`
	Language         string   `json:"language"`
	Tone             Tone     `json:"tone"`
	AutoPilotEnabled bool     `json:"auto_pilot_enabled"`
}

type IProfileRepository interface {
	Get(ctx context.Context) (Profile, error)
	// AddTopic rejects empty and duplicate topics with ErrDuplicateTopic /
	// ErrEmptyTopic. RemoveTopic is unconditional.
	AddTopic(ctx context.Context, topic string) error
	RemoveTopic(ctx context.Context, topic string) error
	SetLanguage(ctx context.Context, language string) error
	SetTone(ctx context.Context, tone Tone) error
	SetAutoPilot(ctx context.Context, enabled bool) error
}
