package monitoring

import (
	"time"

	"github.com/mblanco/stockroom-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionSweeper periodically prunes expired sessions from the store.
type SessionSweeper struct {
	sessions services.SessionServiceProvider
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewSessionSweeper creates a sweeper driven by a standard cron expression
// (descriptors like "@hourly" work too).
func NewSessionSweeper(sessions services.SessionServiceProvider, cronExpr string) (*SessionSweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &SessionSweeper{
		sessions: sessions,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *SessionSweeper) Run() {
	log.Info().Msg("Starting session sweeper")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	// Sweep once immediately on start
	s.sweep()
	s.nextRun = s.schedule.Next(time.Now())

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping session sweeper")
			return
		case now := <-s.ticker.C:
			if now.After(s.nextRun) {
				s.sweep()
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *SessionSweeper) Stop() {
	s.done <- true
}

func (s *SessionSweeper) sweep() {
	n, err := s.sessions.DeleteExpired()
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune expired sessions")
		return
	}
	if n > 0 {
		log.Info().Int64("pruned", n).Msg("Pruned expired sessions")
	}
}
