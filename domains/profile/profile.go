package profile

import (
	"context"

	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
)

type IProfileUsecase interface {
	Get(ctx context.Context) (pilotDomain.Profile, error)
	AddTopic(ctx context.Context, request AddTopicRequest) (pilotDomain.Profile, error)
	RemoveTopic(ctx context.Context, topic string) (pilotDomain.Profile, error)
	Update(ctx context.Context, request UpdateProfileRequest) (pilotDomain.Profile, error)
	SetAutoPilot(ctx context.Context, request SetAutoPilotRequest) (pilotDomain.Profile, error)
}

type AddTopicRequest struct {
	Topic string `json:"topic" form:"topic"`
}

type UpdateProfileRequest struct {
	Language string `json:"language,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

type SetAutoPilotRequest struct {
	Enabled bool `json:"enabled"`
}
