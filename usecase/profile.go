package usecase

import (
	"context"
	"errors"
	"fmt"

	domainProfile "github.com/postpilothq/postpilot/domains/profile"
	"github.com/postpilothq/postpilot/pilot/application"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
	"github.com/postpilothq/postpilot/validations"
	"github.com/sirupsen/logrus"
)

type serviceProfile struct {
	repo   pilotDomain.IProfileRepository
	engine *application.AutoPilotEngine
}

func NewProfileService(repo pilotDomain.IProfileRepository, engine *application.AutoPilotEngine) domainProfile.IProfileUsecase {
	return &serviceProfile{repo: repo, engine: engine}
}

func (service *serviceProfile) Get(ctx context.Context) (pilotDomain.Profile, error) {
	return service.repo.Get(ctx)
}

func (service *serviceProfile) AddTopic(ctx context.Context, request domainProfile.AddTopicRequest) (pilotDomain.Profile, error) {
	if err := validations.ValidateAddTopic(ctx, request); err != nil {
		return pilotDomain.Profile{}, err
	}

	err := service.repo.AddTopic(ctx, request.Topic)
	if errors.Is(err, pilotDomain.ErrEmptyTopic) || errors.Is(err, pilotDomain.ErrDuplicateTopic) {
		return pilotDomain.Profile{}, pkgError.ValidationError(err.Error())
	}
	if err != nil {
		return pilotDomain.Profile{}, err
	}
	return service.repo.Get(ctx)
}

func (service *serviceProfile) RemoveTopic(ctx context.Context, topic string) (pilotDomain.Profile, error) {
	if err := service.repo.RemoveTopic(ctx, topic); err != nil {
		return pilotDomain.Profile{}, err
	}
	return service.repo.Get(ctx)
}

func (service *serviceProfile) Update(ctx context.Context, request domainProfile.UpdateProfileRequest) (pilotDomain.Profile, error) {
	if request.Language != "" {
		if err := service.repo.SetLanguage(ctx, request.Language); err != nil {
			return pilotDomain.Profile{}, err
		}
	}
	if request.Tone != "" {
		tone, err := pilotDomain.ParseTone(request.Tone)
		if err != nil {
			return pilotDomain.Profile{}, pkgError.ValidationError(err.Error())
		}
		if err := service.repo.SetTone(ctx, tone); err != nil {
			return pilotDomain.Profile{}, err
		}
	}
	return service.repo.Get(ctx)
}

// SetAutoPilot stores the flag and supervises the engine accordingly. The
// engine's own state guards make redundant toggles harmless.
func (service *serviceProfile) SetAutoPilot(ctx context.Context, request domainProfile.SetAutoPilotRequest) (pilotDomain.Profile, error) {
	if request.Enabled {
		if err := service.engine.Start(context.WithoutCancel(ctx)); err != nil {
			return pilotDomain.Profile{}, pkgError.ValidationError(fmt.Sprintf("cannot engage auto-pilot: %v", err))
		}
	} else {
		service.engine.Stop()
	}

	if err := service.repo.SetAutoPilot(ctx, request.Enabled); err != nil {
		logrus.WithError(err).Error("[PROFILE] Failed to persist auto-pilot flag")
		return pilotDomain.Profile{}, err
	}
	return service.repo.Get(ctx)
}
