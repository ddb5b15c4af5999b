package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/interfaces"
)

// Service runs the periodic photo cache cleanup on a cron schedule.
type Service struct {
	photoStore interfaces.PhotoStore
	events     interfaces.EventService
	config     *common.PhotosConfig
	cron       *cron.Cron
	logger     arbor.ILogger
	running    bool
}

// NewService creates a new scheduler service
func NewService(photoStore interfaces.PhotoStore, events interfaces.EventService, config *common.PhotosConfig, logger arbor.ILogger) *Service {
	return &Service{
		photoStore: photoStore,
		events:     events,
		config:     config,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start registers the cleanup job and starts the cron loop.
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	schedule := s.config.CleanupSchedule
	if schedule == "" {
		schedule = "0 * * * *" // Default: hourly
	}

	if _, err := s.cron.AddFunc(schedule, s.runCleanup); err != nil {
		return fmt.Errorf("failed to add cleanup job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().Str("schedule", schedule).Msg("Photo cache cleanup scheduled")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Service) Stop() {
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) runCleanup() {
	removed, err := s.photoStore.Cleanup()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Photo cache cleanup failed")
		return
	}

	s.logger.Info().Int("removed", removed).Msg("Photo cache cleanup completed")

	if s.events != nil {
		s.events.Publish(context.Background(), interfaces.Event{
			Type: interfaces.EventPhotoCacheCleanup,
			Payload: map[string]interface{}{
				"removed": removed,
			},
		})
	}
}
