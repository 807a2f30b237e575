package state

import (
	"context"
	"fmt"
	"sync"

	"aocbot/internal/providers"
	"aocbot/internal/services"
	"aocbot/internal/state/interfaces"
	"aocbot/internal/structures"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.BoardServiceInterface
	fileManager *FileManager
	cron        *cron.Cron
	opsMu       sync.Mutex
}

// Init starts the cron job when schedule.enabled is set; otherwise the
// server only answers explicit /invoke triggers.
func (s *Scheduler) Init() error {
	if !s.config.Schedule.Enabled {
		s.logger.Infof(providers.TypeApp, "Schedule disabled, waiting for external triggers")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.Schedule.Spec, func() {
		if err := s.Run(context.Background()); err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled run failed: %s", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", s.config.Schedule.Spec, err)
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduled runs at %q, baseline in %s", s.config.Schedule.Spec, s.config.Persistence.FilePath)
	return nil
}

// Run restores the baseline, invokes once and persists the result. When the
// invocation fails the stored baseline is left as it was.
func (s *Scheduler) Run(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	path := s.config.Persistence.FilePath
	previous, err := s.fileManager.Load(path)
	if err != nil {
		return fmt.Errorf("restore baseline: %w", err)
	}

	next, err := s.service.Invoke(ctx, previous)
	if err != nil {
		return err
	}

	if err := s.fileManager.Save(path, next); err != nil {
		return fmt.Errorf("persist baseline: %w", err)
	}
	s.logger.Infof(providers.TypeState, "Persisted baseline with %d member(s) to %s", next.Len(), path)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.BoardServiceInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
	}
}
