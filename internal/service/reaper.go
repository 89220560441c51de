package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartReaper runs a background goroutine that periodically sweeps expired
// and long-finished sessions until the context is cancelled.
func (s *InterviewService) StartReaper(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		log.Info().Dur("interval", interval).Msg("session reaper started")

		for {
			select {
			case <-ticker.Chan():
				if reaped := s.Reap(); reaped > 0 {
					log.Info().Int("reaped", reaped).Msg("expired sessions removed")
				}
			case <-ctx.Done():
				log.Info().Msg("session reaper shutting down")
				return
			}
		}
	}()
}
