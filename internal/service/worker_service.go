package service

import (
	"context"
	"time"

	"hospital-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// WorkerService runs periodic housekeeping: purging dead refresh tokens
// and flipping stale scheduled appointments to no_show.
type WorkerService struct {
	userRepo        *repository.UserRepository
	appointmentRepo *repository.AppointmentRepository
	interval        time.Duration
	grace           time.Duration
}

func NewWorkerService(userRepo *repository.UserRepository, appointmentRepo *repository.AppointmentRepository, interval, grace time.Duration) *WorkerService {
	return &WorkerService{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		interval:        interval,
		grace:           grace,
	}
}

// Start begins the background sweeper loop. It runs one sweep immediately
// and then on every tick until the context is cancelled.
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("background sweeper started")

	w.sweep()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("background sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *WorkerService) sweep() {
	now := time.Now()

	purged, err := w.userRepo.DeleteExpiredRefreshTokens(now)
	if err != nil {
		log.Error().Err(err).Msg("failed to purge expired refresh tokens")
	} else if purged > 0 {
		log.Info().Int64("count", purged).Msg("purged expired refresh tokens")
	}

	flipped, err := w.appointmentRepo.MarkStaleScheduledAsNoShow(now.Add(-w.grace))
	if err != nil {
		log.Error().Err(err).Msg("failed to mark stale appointments as no_show")
	} else if flipped > 0 {
		log.Info().Int64("count", flipped).Msg("marked stale appointments as no_show")
	}
}
