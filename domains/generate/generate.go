package generate

import "context"

type IGenerateUsecase interface {
	// Generate produces up to Count candidate posts from the current
	// profile (or an explicit topic override). The result always carries
	// an explicit fallback flag; callers never inspect content to detect
	// provider failure.
	Generate(ctx context.Context, request GenerateRequest) (GenerateResult, error)
}

type GenerateRequest struct {
	// Topics overrides the profile topic set when non-empty.
	Topics []string `json:"topics,omitempty"`
	Count  int      `json:"count"`
}

type GenerateResult struct {
	Candidates []string `json:"candidates"`
	Fallback   bool     `json:"fallback"`
	Reason     string   `json:"reason,omitempty"`
}
