package auth

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"storefront/internal/domain/repository"
)

const sessionSweepInterval = time.Hour

// SessionSweeperParams defines the dependencies for the session sweeper.
type SessionSweeperParams struct {
	fx.In
	fx.Lifecycle

	Sessions repository.RefreshTokenRepository
	Logger   *slog.Logger
}

// SessionSweeper periodically removes expired refresh sessions. Expired rows
// are already treated as absent on read; the sweep keeps the table from
// accumulating dead sessions.
type SessionSweeper struct {
	sessions repository.RefreshTokenRepository
	logger   *slog.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSessionSweeper constructs the sweeper and binds it to the fx lifecycle.
func NewSessionSweeper(params SessionSweeperParams) *SessionSweeper {
	sweeper := &SessionSweeper{
		sessions: params.Sessions,
		logger:   params.Logger,
		interval: sessionSweepInterval,
	}

	params.Append(fx.Hook{
		OnStart: sweeper.start,
		OnStop:  sweeper.stop,
	})

	return sweeper
}

func (s *SessionSweeper) start(context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx)

	return nil
}

func (s *SessionSweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("Session sweep failed", slog.Any("error", err))

		return
	}

	if removed > 0 {
		s.logger.Info("Expired sessions removed", slog.Int64("count", removed))
	}
}

func (s *SessionSweeper) stop(context.Context) error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done

	return nil
}
