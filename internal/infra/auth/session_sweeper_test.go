package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type fakeSessionStore struct {
	mu         sync.Mutex
	sweepCalls int
	removed    int64
	err        error
}

func (s *fakeSessionStore) Create(_ context.Context, _ *entity.RefreshToken) error { return nil }

func (s *fakeSessionStore) FindByHash(_ context.Context, _ string) (*entity.RefreshToken, error) {
	return nil, repository.ErrRefreshTokenNotFound
}

func (s *fakeSessionStore) DeleteByHash(_ context.Context, _ string) error { return nil }

func (s *fakeSessionStore) DeleteByUserID(_ context.Context, _ uuid.UUID) error { return nil }

func (s *fakeSessionStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepCalls++

	return s.removed, s.err
}

func (s *fakeSessionStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepCalls
}

type fakeLifecycle struct {
	hooks []fx.Hook
}

func (l *fakeLifecycle) Append(hook fx.Hook) {
	l.hooks = append(l.hooks, hook)
}

func newTestSweeper(store *fakeSessionStore) (*SessionSweeper, *fakeLifecycle) {
	lc := &fakeLifecycle{}
	sweeper := NewSessionSweeper(SessionSweeperParams{
		Lifecycle: lc,
		Sessions:  store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return sweeper, lc
}

func TestNewSessionSweeper_RegistersLifecycleHooks(t *testing.T) {
	_, lc := newTestSweeper(&fakeSessionStore{})

	require.Len(t, lc.hooks, 1)
	assert.NotNil(t, lc.hooks[0].OnStart)
	assert.NotNil(t, lc.hooks[0].OnStop)
}

func TestSessionSweeper_SweepsUntilStopped(t *testing.T) {
	store := &fakeSessionStore{removed: 3}
	sweeper, _ := newTestSweeper(store)
	sweeper.interval = 5 * time.Millisecond

	require.NoError(t, sweeper.start(context.Background()))
	require.Eventually(t, func() bool {
		return store.calls() >= 2
	}, time.Second, time.Millisecond)

	require.NoError(t, sweeper.stop(context.Background()))

	callsAtStop := store.calls()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, callsAtStop, store.calls())
}

func TestSessionSweeper_SurvivesStoreErrors(t *testing.T) {
	store := &fakeSessionStore{err: errors.New("connection reset")}
	sweeper, _ := newTestSweeper(store)
	sweeper.interval = 5 * time.Millisecond

	require.NoError(t, sweeper.start(context.Background()))
	require.Eventually(t, func() bool {
		return store.calls() >= 2
	}, time.Second, time.Millisecond)

	require.NoError(t, sweeper.stop(context.Background()))
}

func TestSessionSweeper_StopWithoutStart(t *testing.T) {
	sweeper, _ := newTestSweeper(&fakeSessionStore{})

	assert.NoError(t, sweeper.stop(context.Background()))
}
