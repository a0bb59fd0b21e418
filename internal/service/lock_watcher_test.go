package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type stubSnapshotSource struct {
	mu    sync.Mutex
	snap  models.SectionSnapshot
	err   error
	calls int
}

func (s *stubSnapshotSource) Snapshot(ctx context.Context, section models.Section) (models.SectionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.SectionSnapshot{}, s.err
	}
	snap := s.snap
	snap.Section = section
	return snap, nil
}

func (s *stubSnapshotSource) set(snap models.SectionSnapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.err = err
}

func (s *stubSnapshotSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestLockWatcherPublishesSnapshots(t *testing.T) {
	source := &stubSnapshotSource{snap: models.SectionSnapshot{Locked: true}}
	watcher := NewLockWatcher(source, 10*time.Millisecond, nil, zap.NewNop())
	defer watcher.Stop()

	unsubscribe := watcher.Subscribe(models.SectionNotices)
	defer unsubscribe()

	require.Eventually(t, func() bool {
		snap, ok := watcher.Current(models.SectionNotices)
		return ok && snap.Locked
	}, time.Second, 5*time.Millisecond)

	snap, ok := watcher.Current(models.SectionNotices)
	require.True(t, ok)
	assert.Equal(t, models.SectionNotices, snap.Section)
}

func TestLockWatcherSharesOneLoopPerSection(t *testing.T) {
	source := &stubSnapshotSource{}
	watcher := NewLockWatcher(source, time.Hour, nil, zap.NewNop())
	defer watcher.Stop()

	first := watcher.Subscribe(models.SectionHomework)
	second := watcher.Subscribe(models.SectionHomework)

	require.Eventually(t, func() bool {
		_, ok := watcher.Current(models.SectionHomework)
		return ok
	}, time.Second, 5*time.Millisecond)

	// Only the initial poll ran; the second subscriber joined the loop.
	assert.Equal(t, 1, source.callCount())

	first()
	_, ok := watcher.Current(models.SectionHomework)
	assert.True(t, ok, "entry survives while a subscriber remains")

	second()
	_, ok = watcher.Current(models.SectionHomework)
	assert.False(t, ok, "entry cleared after the last unsubscribe")
}

func TestLockWatcherPausesOnUnavailableUntilRetry(t *testing.T) {
	source := &stubSnapshotSource{err: appErrors.ErrUnavailable}
	watcher := NewLockWatcher(source, 10*time.Millisecond, nil, zap.NewNop())
	defer watcher.Stop()

	unsubscribe := watcher.Subscribe(models.SectionRoutine)
	defer unsubscribe()

	require.Eventually(t, func() bool {
		return watcher.Paused(models.SectionRoutine)
	}, time.Second, 5*time.Millisecond)

	calls := source.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, source.callCount(), "no polls while paused")

	source.set(models.SectionSnapshot{Locked: false}, nil)
	watcher.Retry(models.SectionRoutine)

	require.Eventually(t, func() bool {
		_, ok := watcher.Current(models.SectionRoutine)
		return ok && !watcher.Paused(models.SectionRoutine)
	}, time.Second, 5*time.Millisecond)
}

func TestLockWatcherKeepsPollingOnGenericErrors(t *testing.T) {
	source := &stubSnapshotSource{err: assert.AnError}
	watcher := NewLockWatcher(source, 10*time.Millisecond, nil, zap.NewNop())
	defer watcher.Stop()

	unsubscribe := watcher.Subscribe(models.SectionClassTime)
	defer unsubscribe()

	require.Eventually(t, func() bool {
		return source.callCount() >= 3
	}, time.Second, 5*time.Millisecond)
	assert.False(t, watcher.Paused(models.SectionClassTime))
}

func TestLockWatcherStandingSubscriptionsWarmEverySection(t *testing.T) {
	source := &stubSnapshotSource{snap: models.SectionSnapshot{Locked: true}}
	watcher := NewLockWatcher(source, time.Hour, nil, zap.NewNop())
	defer watcher.Stop()

	// Server startup subscribes once per section and holds the
	// subscriptions for the process lifetime.
	for _, section := range models.Sections() {
		unsubscribe := watcher.Subscribe(section)
		defer unsubscribe()
	}

	for _, section := range models.Sections() {
		section := section
		require.Eventually(t, func() bool {
			snap, ok := watcher.Current(section)
			return ok && snap.Section == section
		}, time.Second, 5*time.Millisecond)
	}
	assert.Equal(t, len(models.Sections()), source.callCount())
}

func TestLockWatcherRetryOnHealthySectionIsNoop(t *testing.T) {
	source := &stubSnapshotSource{}
	watcher := NewLockWatcher(source, time.Hour, nil, zap.NewNop())
	defer watcher.Stop()

	unsubscribe := watcher.Subscribe(models.SectionNotices)
	defer unsubscribe()

	watcher.Retry(models.SectionNotices)
	watcher.Retry(models.SectionHomework)
	assert.False(t, watcher.Paused(models.SectionNotices))
}
