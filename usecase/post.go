package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domainPost "github.com/postpilothq/postpilot/domains/post"
	"github.com/postpilothq/postpilot/pilot/application"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
	"github.com/postpilothq/postpilot/validations"
	"github.com/sirupsen/logrus"
)

type servicePost struct {
	repo      pilotDomain.IPostRepository
	notifier  pilotDomain.INotificationStore
	scheduler *application.PublishScheduler
}

func NewPostService(repo pilotDomain.IPostRepository, notifier pilotDomain.INotificationStore, scheduler *application.PublishScheduler) domainPost.IPostUsecase {
	return &servicePost{repo: repo, notifier: notifier, scheduler: scheduler}
}

func (service *servicePost) List(ctx context.Context) ([]pilotDomain.Post, error) {
	return service.repo.List(ctx)
}

func (service *servicePost) Get(ctx context.Context, id string) (pilotDomain.Post, error) {
	post, err := service.repo.Get(ctx, id)
	if errors.Is(err, pilotDomain.ErrPostNotFound) {
		return pilotDomain.Post{}, pkgError.NotFoundError("post not found")
	}
	return post, err
}

func (service *servicePost) PostNow(ctx context.Context, request domainPost.CreatePostRequest) (pilotDomain.Post, error) {
	if err := validations.ValidateCreatePost(ctx, request); err != nil {
		return pilotDomain.Post{}, err
	}

	post := pilotDomain.Post{
		ID:        uuid.NewString(),
		Content:   request.Content,
		Status:    pilotDomain.PostStatusPosted,
		CreatedAt: time.Now().UTC(),
	}
	if err := service.repo.Add(ctx, post); err != nil {
		return pilotDomain.Post{}, err
	}

	service.notifier.Push(ctx, pilotDomain.NotificationSuccess, "Post published")
	logrus.Infof("[POST] Published post %s", post.ID)
	return post, nil
}

func (service *servicePost) Schedule(ctx context.Context, request domainPost.SchedulePostRequest) (pilotDomain.Post, error) {
	if err := validations.ValidateSchedulePost(ctx, request); err != nil {
		return pilotDomain.Post{}, err
	}

	at := request.ScheduledAt.UTC()
	post := pilotDomain.Post{
		ID:          uuid.NewString(),
		Content:     request.Content,
		Status:      pilotDomain.PostStatusScheduled,
		ScheduledAt: &at,
		CreatedAt:   time.Now().UTC(),
	}
	if err := service.repo.Add(ctx, post); err != nil {
		return pilotDomain.Post{}, err
	}

	if service.scheduler != nil {
		service.scheduler.Wake()
	}
	service.notifier.Push(ctx, pilotDomain.NotificationSuccess, "Post scheduled")
	logrus.Infof("[POST] Scheduled post %s for %s", post.ID, at)
	return post, nil
}

func (service *servicePost) Delete(ctx context.Context, id string) error {
	return service.repo.Remove(ctx, id)
}
