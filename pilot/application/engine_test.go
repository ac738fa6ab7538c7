package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pilot/repository"
)

type fakeProvider struct {
	mu     sync.Mutex
	result string
	err    error
	calls  int
	topics []string

	// When set, GeneratePost signals entered and then blocks until block
	// is closed. Used to simulate an in-flight request.
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GeneratePost(ctx context.Context, topic, language string, tone domain.Tone) (string, error) {
	f.mu.Lock()
	f.calls++
	f.topics = append(f.topics, topic)
	entered, block := f.entered, f.block
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-block
	}
	return f.result, f.err
}

func (f *fakeProvider) GenerateCandidates(ctx context.Context, topics []string, language string, tone domain.Tone, count int) ([]string, error) {
	return []string{f.result}, f.err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type engineFixture struct {
	engine   *AutoPilotEngine
	profile  *repository.MemoryProfileRepository
	posts    *repository.MemoryPostRepository
	notifier *repository.MemoryNotificationStore
	provider *fakeProvider
}

func newEngineFixture(t *testing.T, interval time.Duration) *engineFixture {
	t.Helper()
	f := &engineFixture{
		profile:  repository.NewMemoryProfileRepository(),
		posts:    repository.NewMemoryPostRepository(),
		notifier: repository.NewMemoryNotificationStore(),
		provider: &fakeProvider{result: "Exploring AI tools today. #AI"},
	}
	f.engine = NewAutoPilotEngine(f.profile, f.posts, f.notifier, f.provider, interval, nil)
	return f
}

func TestEngine_ToggleOnOffBeforeTick(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	f.engine.Stop()

	posts, _ := f.posts.List(ctx)
	if len(posts) != 0 {
		t.Fatalf("expected zero posts, got %d", len(posts))
	}

	// Store is newest-first: disengaged on top, engaged below it.
	notifs := f.notifier.List(ctx)
	if len(notifs) != 2 {
		t.Fatalf("expected exactly 2 notifications, got %d", len(notifs))
	}
	if notifs[1].Message != "Auto-Pilot engaged" || notifs[0].Message != "Auto-Pilot disengaged" {
		t.Fatalf("unexpected notification order: %q then %q", notifs[1].Message, notifs[0].Message)
	}
	if f.engine.State() != StateIdle {
		t.Fatalf("engine should be idle after Stop, got %s", f.engine.State())
	}
}

func TestEngine_DoubleStartIsIdempotent(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("second Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()

	engaged := 0
	for _, n := range f.notifier.List(ctx) {
		if n.Message == "Auto-Pilot engaged" {
			engaged++
		}
	}
	if engaged != 1 {
		t.Fatalf("expected exactly 1 engaged notification, got %d", engaged)
	}
	if f.engine.State() != StateArmed {
		t.Fatalf("engine should be armed, got %s", f.engine.State())
	}
}

func TestEngine_StopWhileIdleIsNoOp(t *testing.T) {
	f := newEngineFixture(t, time.Hour)

	f.engine.Stop()
	f.engine.Stop()

	if n := len(f.notifier.List(context.Background())); n != 0 {
		t.Fatalf("expected no notifications, got %d", n)
	}
}

func TestEngine_StartWithoutProviderFails(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	f.engine.provider = nil

	if err := f.engine.Start(context.Background()); err == nil {
		t.Fatalf("Start() expected error without provider, got nil")
	}
}

func TestEngine_CycleSuccessAppendsPostedPost(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()

	f.engine.runCycle(ctx, 1)

	posts, _ := f.posts.List(ctx)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	head := posts[0]
	if head.Content != "Exploring AI tools today. #AI" {
		t.Fatalf("unexpected content %q", head.Content)
	}
	if head.Status != domain.PostStatusPosted {
		t.Fatalf("expected status posted, got %s", head.Status)
	}
	if head.LikeCount != 0 || head.RepostCount != 0 {
		t.Fatalf("expected zero engagement, got likes=%d reposts=%d", head.LikeCount, head.RepostCount)
	}
	if got := f.engine.Status().Stats.Published; got != 1 {
		t.Fatalf("expected published counter 1, got %d", got)
	}
}

func TestEngine_EmptyTopicsNeverCallsProvider(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()

	f.engine.runCycle(ctx, 1)

	if f.provider.callCount() != 0 {
		t.Fatalf("provider must not be called with empty topics")
	}
	if posts, _ := f.posts.List(ctx); len(posts) != 0 {
		t.Fatalf("queue must stay unchanged, got %d posts", len(posts))
	}
}

func TestEngine_FailedCycleStaysArmed(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()
	before := len(f.notifier.List(ctx))

	f.provider.err = &domain.GenerationError{Provider: "fake", Err: errors.New("boom")}
	f.engine.runCycle(ctx, 1)

	if posts, _ := f.posts.List(ctx); len(posts) != 0 {
		t.Fatalf("failed cycle must not create posts, got %d", len(posts))
	}
	// The automatic path never notifies the user about failures.
	if after := len(f.notifier.List(ctx)); after != before {
		t.Fatalf("failed cycle must not notify, notifications went %d -> %d", before, after)
	}
	if f.engine.State() != StateArmed {
		t.Fatalf("engine must stay armed after a failed cycle")
	}

	// A later tick still works.
	f.provider.err = nil
	f.engine.runCycle(ctx, 1)
	if posts, _ := f.posts.List(ctx); len(posts) != 1 {
		t.Fatalf("subsequent cycle should publish, got %d posts", len(posts))
	}
}

func TestEngine_TopicSelectionIsUniform(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	topics := []string{"go", "ai", "devops"}
	for _, topic := range topics {
		if err := f.profile.AddTopic(ctx, topic); err != nil {
			t.Fatalf("AddTopic(%q) unexpected error: %v", topic, err)
		}
	}
	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()

	// Fail every call so the queue stays empty while selection is recorded.
	f.provider.err = errors.New("short-circuit")

	const trials = 3000
	for i := 0; i < trials; i++ {
		f.engine.runCycle(ctx, 1)
	}

	counts := make(map[string]int)
	for _, topic := range f.provider.topics {
		counts[topic]++
	}
	expected := trials / len(topics)
	tolerance := expected / 5
	for _, topic := range topics {
		if diff := counts[topic] - expected; diff < -tolerance || diff > tolerance {
			t.Fatalf("topic %q selected %d times, expected %d±%d", topic, counts[topic], expected, tolerance)
		}
	}
}

func TestEngine_OverlappingTickIsSkipped(t *testing.T) {
	f := newEngineFixture(t, 10*time.Millisecond)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	f.provider.entered = make(chan struct{}, 1)
	f.provider.block = make(chan struct{})

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	// First cycle is now in flight and blocked inside the provider.
	<-f.provider.entered

	// Further ticks must be skipped, not stacked.
	deadline := time.After(2 * time.Second)
	for f.engine.Status().Stats.Skipped == 0 {
		select {
		case <-deadline:
			t.Fatalf("no tick was skipped while a cycle was in flight")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := f.provider.callCount(); got != 1 {
		t.Fatalf("expected exactly 1 provider call while blocked, got %d", got)
	}

	f.engine.Stop()
	close(f.provider.block)
}

func TestEngine_CycleSkippedWhenLockHeldElsewhere(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	f.engine.acquireLock = func(key string, expiration time.Duration) bool { return false }

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer f.engine.Stop()

	f.engine.runCycle(ctx, 1)

	if f.provider.callCount() != 0 {
		t.Fatalf("provider must not be called when another replica holds the lock")
	}
	if got := f.engine.Status().Stats.Skipped; got != 1 {
		t.Fatalf("expected skipped counter 1, got %d", got)
	}
	if posts, _ := f.posts.List(ctx); len(posts) != 0 {
		t.Fatalf("locked-out cycle must not publish, got %d posts", len(posts))
	}
}

func TestEngine_LateResultIsDiscardedAfterStop(t *testing.T) {
	f := newEngineFixture(t, time.Hour)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	f.provider.entered = make(chan struct{}, 1)
	f.provider.block = make(chan struct{})

	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		f.engine.runCycle(ctx, 1)
		close(done)
	}()

	<-f.provider.entered
	f.engine.Stop()
	close(f.provider.block)
	<-done

	if posts, _ := f.posts.List(ctx); len(posts) != 0 {
		t.Fatalf("late result must be discarded after Stop, got %d posts", len(posts))
	}
}

func TestEngine_TickerPublishes(t *testing.T) {
	f := newEngineFixture(t, 10*time.Millisecond)
	ctx := context.Background()

	if err := f.profile.AddTopic(ctx, "AI"); err != nil {
		t.Fatalf("AddTopic() unexpected error: %v", err)
	}
	if err := f.engine.Start(ctx); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if posts, _ := f.posts.List(ctx); len(posts) > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("no post published within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
	f.engine.Stop()
}
