package usecase

import (
	"context"

	domainGenerate "github.com/postpilothq/postpilot/domains/generate"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pilot/providers"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
	"github.com/postpilothq/postpilot/validations"
	"github.com/sirupsen/logrus"
)

const defaultCandidateCount = 3

type serviceGenerate struct {
	profile  pilotDomain.IProfileRepository
	provider pilotDomain.ContentProvider
	notifier pilotDomain.INotificationStore
}

func NewGenerateService(profile pilotDomain.IProfileRepository, provider pilotDomain.ContentProvider, notifier pilotDomain.INotificationStore) domainGenerate.IGenerateUsecase {
	return &serviceGenerate{profile: profile, provider: provider, notifier: notifier}
}

// Generate is the manual path: unlike the auto-pilot cycle, its failures
// are surfaced to the user, and a provider outage yields placeholder
// candidates with an explicit fallback flag rather than an error.
func (service *serviceGenerate) Generate(ctx context.Context, request domainGenerate.GenerateRequest) (domainGenerate.GenerateResult, error) {
	if request.Count == 0 {
		request.Count = defaultCandidateCount
	}
	if err := validations.ValidateGenerate(ctx, request); err != nil {
		return domainGenerate.GenerateResult{}, err
	}

	prof, err := service.profile.Get(ctx)
	if err != nil {
		return domainGenerate.GenerateResult{}, err
	}

	topics := request.Topics
	if len(topics) == 0 {
		topics = prof.Topics
	}
	if len(topics) == 0 {
		return domainGenerate.GenerateResult{}, pkgError.ValidationError(pilotDomain.ErrEmptyTopics.Error() + ", add at least one topic before generating content")
	}

	if service.provider == nil {
		return domainGenerate.GenerateResult{}, pkgError.ValidationError("no content provider configured")
	}

	language := prof.Language
	if language == "" {
		language = pilotDomain.DefaultLanguage
	}

	candidates, err := service.provider.GenerateCandidates(ctx, topics, language, prof.Tone, request.Count)
	if err != nil {
		logrus.WithError(err).Warn("[GENERATE] Provider failed, serving fallback candidates")
		service.notifier.Push(ctx, pilotDomain.NotificationError, "Content generation failed, showing placeholders")
		return domainGenerate.GenerateResult{
			Candidates: providers.FallbackCandidates(topics, request.Count),
			Fallback:   true,
			Reason:     err.Error(),
		}, nil
	}

	service.notifier.Push(ctx, pilotDomain.NotificationSuccess, "Content generated")
	return domainGenerate.GenerateResult{Candidates: candidates}, nil
}
