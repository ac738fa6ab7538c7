package usecase

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	domainHealth "github.com/postpilothq/postpilot/domains/health"
	"github.com/postpilothq/postpilot/pilot/application"
)

type serviceHealth struct {
	startedAt time.Time
	backend   string
	engine    *application.AutoPilotEngine
}

func NewHealthService(backend string, engine *application.AutoPilotEngine) domainHealth.IHealthUsecase {
	return &serviceHealth{
		startedAt: time.Now().UTC(),
		backend:   backend,
		engine:    engine,
	}
}

func (service *serviceHealth) Status(ctx context.Context) domainHealth.StatusResponse {
	status := service.engine.Status()
	return domainHealth.StatusResponse{
		Uptime:    humanize.Time(service.startedAt),
		Provider:  status.Provider,
		Backend:   service.backend,
		AutoPilot: status,
	}
}
