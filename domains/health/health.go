package health

import "context"

type IHealthUsecase interface {
	Status(ctx context.Context) StatusResponse
}

type StatusResponse struct {
	Uptime    string `json:"uptime"`
	Provider  string `json:"provider"`
	Backend   string `json:"backend"`
	AutoPilot any    `json:"auto_pilot"`
}
