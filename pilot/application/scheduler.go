package application

import (
	"context"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/sirupsen/logrus"
)

// PublishScheduler flips scheduled posts to posted when they mature. It
// sleeps adaptively until the next due post, with a safety ticker as a
// backstop, and can be woken when a new post is scheduled.
type PublishScheduler struct {
	posts    domain.IPostRepository
	notifier domain.INotificationStore

	acquireLock func(key string, expiration time.Duration) bool
	wake        chan struct{}
}

func NewPublishScheduler(
	posts domain.IPostRepository,
	notifier domain.INotificationStore,
	lockFunc func(key string, expiration time.Duration) bool,
) *PublishScheduler {
	return &PublishScheduler{
		posts:       posts,
		notifier:    notifier,
		acquireLock: lockFunc,
		wake:        make(chan struct{}, 1),
	}
}

// StartLoop launches the background worker, bound to ctx for teardown.
func (s *PublishScheduler) StartLoop(ctx context.Context) {
	logrus.Info("[SCHEDULER] Publish worker started")
	go s.runWorker(ctx)
}

// Wake nudges the worker to recompute its sleep, typically after a new
// post was scheduled. Non-blocking.
func (s *PublishScheduler) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *PublishScheduler) runWorker(ctx context.Context) {
	safetyTicker := time.NewTicker(time.Minute)
	defer safetyTicker.Stop()

	for {
		nextAt := s.ExecDue(ctx)

		sleep := time.Hour
		if !nextAt.IsZero() {
			sleep = time.Until(nextAt)
			if sleep < 0 {
				sleep = time.Second
			}
			if sleep > time.Hour {
				sleep = time.Hour
			}
		}

		adaptiveTimer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			adaptiveTimer.Stop()
			return
		case <-s.wake:
			adaptiveTimer.Stop()
		case <-safetyTicker.C:
			adaptiveTimer.Stop()
		case <-adaptiveTimer.C:
		}
	}
}

// ExecDue publishes matured posts and returns the time of the next
// scheduled one (zero when the queue holds none).
func (s *PublishScheduler) ExecDue(ctx context.Context) time.Time {
	due, err := s.posts.ListDueScheduled(ctx, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to list due posts")
		return time.Time{}
	}

	for _, post := range due {
		if s.acquireLock != nil && !s.acquireLock("publish:"+post.ID, 30*time.Second) {
			continue
		}

		post.Status = domain.PostStatusPosted
		if err := s.posts.Update(ctx, post); err != nil {
			logrus.WithError(err).Errorf("[SCHEDULER] Failed to publish post %s", post.ID)
			continue
		}
		s.notifier.Push(ctx, domain.NotificationSuccess, "Scheduled post published")
		logrus.Infof("[SCHEDULER] Published scheduled post %s", post.ID)
	}

	nextAt, err := s.posts.NextScheduledAt(ctx)
	if err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to peek next scheduled post")
		return time.Time{}
	}
	return nextAt
}
