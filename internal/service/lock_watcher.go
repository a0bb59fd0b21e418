package service

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

// SnapshotSource supplies fresh per-section lock snapshots.
type SnapshotSource interface {
	Snapshot(ctx context.Context, section models.Section) (models.SectionSnapshot, error)
}

// LockWatcher keeps section lock snapshots warm by polling. All subscribers
// of a section share one in-process cache entry; the first subscription
// starts the poll loop and the last unsubscribe stops it. When a poll fails
// with an unavailability error the loop pauses instead of hammering the
// store, and stays paused until Retry is called for that section.
type LockWatcher struct {
	source   SnapshotSource
	local    *gocache.Cache
	interval time.Duration
	timeout  time.Duration
	metrics  *MetricsService
	logger   *zap.Logger

	mu    sync.Mutex
	polls map[models.Section]*sectionPoll
}

type sectionPoll struct {
	cancel context.CancelFunc
	refs   int
	paused bool
	resume chan struct{}
}

// NewLockWatcher constructs a watcher. Local entries never expire on their
// own; the poll loop overwrites them and Stop clears them.
func NewLockWatcher(source SnapshotSource, interval time.Duration, metrics *MetricsService, logger *zap.Logger) *LockWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LockWatcher{
		source:   source,
		local:    gocache.New(gocache.NoExpiration, 0),
		interval: interval,
		timeout:  interval,
		metrics:  metrics,
		logger:   logger,
		polls:    make(map[models.Section]*sectionPoll),
	}
}

// Subscribe registers interest in a section and returns an unsubscribe
// function. Repeated subscriptions share the same poll loop.
func (w *LockWatcher) Subscribe(section models.Section) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	poll, ok := w.polls[section]
	if ok {
		poll.refs++
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		poll = &sectionPoll{cancel: cancel, refs: 1, resume: make(chan struct{}, 1)}
		w.polls[section] = poll
		go w.run(ctx, section, poll)
	}

	var once sync.Once
	return func() {
		once.Do(func() { w.unsubscribe(section) })
	}
}

func (w *LockWatcher) unsubscribe(section models.Section) {
	w.mu.Lock()
	defer w.mu.Unlock()

	poll, ok := w.polls[section]
	if !ok {
		return
	}
	poll.refs--
	if poll.refs > 0 {
		return
	}
	poll.cancel()
	delete(w.polls, section)
	w.local.Delete(string(section))
}

// Current returns the latest snapshot the watcher holds for a section.
func (w *LockWatcher) Current(section models.Section) (models.SectionSnapshot, bool) {
	entry, ok := w.local.Get(string(section))
	if !ok {
		return models.SectionSnapshot{}, false
	}
	snap, ok := entry.(models.SectionSnapshot)
	return snap, ok
}

// Retry resumes a section whose polling paused after an unavailability error.
// Calling it for a healthy or unknown section is a no-op.
func (w *LockWatcher) Retry(section models.Section) {
	w.mu.Lock()
	defer w.mu.Unlock()

	poll, ok := w.polls[section]
	if !ok || !poll.paused {
		return
	}
	poll.paused = false
	select {
	case poll.resume <- struct{}{}:
	default:
	}
}

// Paused reports whether polling for a section is currently suspended.
func (w *LockWatcher) Paused(section models.Section) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	poll, ok := w.polls[section]
	return ok && poll.paused
}

// Stop cancels every poll loop. Used at shutdown.
func (w *LockWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for section, poll := range w.polls {
		poll.cancel()
		delete(w.polls, section)
	}
	w.local.Flush()
}

func (w *LockWatcher) run(ctx context.Context, section models.Section, poll *sectionPoll) {
	w.poll(ctx, section, poll)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.isPaused(section) {
				continue
			}
			w.poll(ctx, section, poll)
		case <-poll.resume:
			w.poll(ctx, section, poll)
		}
	}
}

func (w *LockWatcher) poll(ctx context.Context, section models.Section, poll *sectionPoll) {
	pollCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	snap, err := w.source.Snapshot(pollCtx, section)
	if ctx.Err() != nil {
		// The subscription ended while the request was in flight; the
		// result must not land in the shared entry.
		return
	}
	if err != nil {
		if appErrors.KindOf(err) == appErrors.KindUnavailable {
			w.pause(section)
			if w.metrics != nil {
				w.metrics.RecordWatcherPoll(string(section), "paused")
			}
			w.logger.Warn("lock polling paused until retry",
				zap.String("section", string(section)), zap.Error(err))
			return
		}
		if w.metrics != nil {
			w.metrics.RecordWatcherPoll(string(section), "error")
		}
		w.logger.Warn("lock poll failed", zap.String("section", string(section)), zap.Error(err))
		return
	}

	w.local.Set(string(section), snap, gocache.NoExpiration)
	if w.metrics != nil {
		w.metrics.RecordWatcherPoll(string(section), "ok")
	}
}

func (w *LockWatcher) pause(section models.Section) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if poll, ok := w.polls[section]; ok {
		poll.paused = true
	}
}

func (w *LockWatcher) isPaused(section models.Section) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	poll, ok := w.polls[section]
	return ok && poll.paused
}
