package application

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/sirupsen/logrus"
)

type EngineState string

const (
	StateIdle  EngineState = "idle"
	StateArmed EngineState = "armed"
)

// EngineStats are cumulative cycle counters since process start.
type EngineStats struct {
	Ticks     int64 `json:"ticks"`
	Published int64 `json:"published"`
	Skipped   int64 `json:"skipped"`
	Failed    int64 `json:"failed"`
}

// EngineStatus is the snapshot served by the status endpoint.
type EngineStatus struct {
	State    EngineState `json:"state"`
	Interval string      `json:"interval"`
	Provider string      `json:"provider"`
	Stats    EngineStats `json:"stats"`
}

// AutoPilotEngine runs the unattended generate-and-publish cycle.
//
// Two states: Idle (no timer) and Armed (a cycle fires every interval).
// Start while Armed and Stop while Idle are no-ops, so the UI can toggle
// the flag freely. Each cycle re-reads the profile from the repository,
// never a captured copy, so topic and tone edits apply on the next tick.
type AutoPilotEngine struct {
	profile  domain.IProfileRepository
	posts    domain.IPostRepository
	notifier domain.INotificationStore
	provider domain.ContentProvider
	interval time.Duration

	// acquireLock, when set, gates each cycle behind a short-lived
	// distributed lock so only one replica publishes.
	acquireLock func(key string, expiration time.Duration) bool

	// pickIndex selects the topic index; swapped in tests.
	pickIndex func(n int) int

	mu         sync.Mutex
	state      EngineState
	cancel     context.CancelFunc
	generation uint64

	inFlight  atomic.Bool
	ticks     atomic.Int64
	published atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
}

func NewAutoPilotEngine(
	profile domain.IProfileRepository,
	posts domain.IPostRepository,
	notifier domain.INotificationStore,
	provider domain.ContentProvider,
	interval time.Duration,
	lockFunc func(key string, expiration time.Duration) bool,
) *AutoPilotEngine {
	if interval <= 0 {
		interval = 45 * time.Second
	}
	return &AutoPilotEngine{
		profile:     profile,
		posts:       posts,
		notifier:    notifier,
		provider:    provider,
		interval:    interval,
		acquireLock: lockFunc,
		pickIndex:   rand.Intn,
		state:       StateIdle,
	}
}

// Start arms the engine. Calling Start while already armed is a no-op:
// exactly one timer exists at any moment. The run loop is bound to ctx, so
// cancelling it on shutdown tears the timer down regardless of state.
func (e *AutoPilotEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateArmed {
		e.mu.Unlock()
		logrus.Debug("[AUTOPILOT] Start ignored, already armed")
		return nil
	}
	if e.provider == nil {
		e.mu.Unlock()
		return fmt.Errorf("no content provider configured")
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.state = StateArmed
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	go e.run(runCtx, gen)

	e.notifier.Push(ctx, domain.NotificationInfo, "Auto-Pilot engaged")
	logrus.Infof("[AUTOPILOT] Engaged. Cycle every %s", e.interval)
	return nil
}

// Stop disarms the engine and cancels the pending timer. Idempotent:
// stopping an idle engine does nothing and emits nothing.
func (e *AutoPilotEngine) Stop() {
	e.mu.Lock()
	if e.state != StateArmed {
		e.mu.Unlock()
		return
	}
	e.state = StateIdle
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.notifier.Push(context.Background(), domain.NotificationInfo, "Auto-Pilot disengaged")
	logrus.Info("[AUTOPILOT] Disengaged")
}

func (e *AutoPilotEngine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *AutoPilotEngine) Status() EngineStatus {
	providerName := ""
	if e.provider != nil {
		providerName = e.provider.Name()
	}
	return EngineStatus{
		State:    e.State(),
		Interval: e.interval.String(),
		Provider: providerName,
		Stats: EngineStats{
			Ticks:     e.ticks.Load(),
			Published: e.published.Load(),
			Skipped:   e.skipped.Load(),
			Failed:    e.failed.Load(),
		},
	}
}

func (e *AutoPilotEngine) run(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Never overlap cycles: a tick that fires while the previous
			// request is still outstanding is skipped.
			if !e.inFlight.CompareAndSwap(false, true) {
				e.skipped.Add(1)
				logrus.Debug("[AUTOPILOT] Previous cycle still in flight, skipping tick")
				continue
			}
			e.ticks.Add(1)
			go func() {
				defer e.inFlight.Store(false)
				e.runCycle(ctx, gen)
			}()
		}
	}
}

// runCycle executes one generate-and-publish cycle. Automatic failures are
// logged only; the manual path is the one that notifies the user on error.
func (e *AutoPilotEngine) runCycle(ctx context.Context, gen uint64) {
	prof, err := e.profile.Get(ctx)
	if err != nil {
		e.failed.Add(1)
		logrus.WithError(err).Error("[AUTOPILOT] Failed to read profile")
		return
	}

	if len(prof.Topics) == 0 {
		e.skipped.Add(1)
		logrus.Debug("[AUTOPILOT] No topics configured, skipping cycle")
		return
	}

	if e.acquireLock != nil && !e.acquireLock("autopilot:cycle", e.interval) {
		e.skipped.Add(1)
		logrus.Debug("[AUTOPILOT] Another replica owns this cycle, skipping")
		return
	}

	topic := prof.Topics[e.pickIndex(len(prof.Topics))]
	language := prof.Language
	if language == "" {
		language = domain.DefaultLanguage
	}

	content, err := e.provider.GeneratePost(ctx, topic, language, prof.Tone)
	if err != nil {
		e.failed.Add(1)
		logrus.WithError(err).Warnf("[AUTOPILOT] Cycle failed for topic %q", topic)
		return
	}

	// A request dispatched before Stop may complete after it; its result
	// must be discarded, not published.
	if ctx.Err() != nil || e.stale(gen) {
		logrus.Debug("[AUTOPILOT] Discarding late result, engine disengaged")
		return
	}

	post := domain.Post{
		ID:        uuid.NewString(),
		Content:   content,
		Status:    domain.PostStatusPosted,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.posts.Add(ctx, post); err != nil {
		e.failed.Add(1)
		logrus.WithError(err).Error("[AUTOPILOT] Failed to append post")
		return
	}

	e.published.Add(1)
	e.notifier.Push(ctx, domain.NotificationSuccess, "Auto-Pilot published a new post")
	logrus.Infof("[AUTOPILOT] Published post %s (topic: %s)", post.ID, topic)
}

func (e *AutoPilotEngine) stale(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != StateArmed || e.generation != gen
}
