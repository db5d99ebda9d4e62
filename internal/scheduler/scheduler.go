package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/leaguebook/internal/models"
	"github.com/yourusername/leaguebook/internal/service"
)

// WeekFunc resolves which season and week a scheduled run should simulate,
// given the time the job fires.
type WeekFunc func(now time.Time) (season, week int)

// Scheduler manages the recurring weekly simulation job
type Scheduler struct {
	cron            *cron.Cron
	simulationSvc   *service.SimulationService
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(simulationSvc *service.SimulationService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		simulationSvc:   simulationSvc,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleWeeklyRun schedules the recurring simulation of the current week
func (s *Scheduler) ScheduleWeeklyRun(cronExpression string, weekOf WeekFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		season, week := weekOf(time.Now().UTC())

		s.logger.WithFields(logrus.Fields{
			"season": season,
			"week":   week,
		}).Info("Starting scheduled simulation run")

		result, err := s.simulationSvc.RunWeek(ctx, service.RunParams{Season: season, Week: week})
		if err == models.ErrRunInFlight {
			s.logger.WithFields(logrus.Fields{
				"season": season,
				"week":   week,
			}).Warn("Scheduled run skipped, a run for this week is already in flight")
			return
		}
		if err != nil {
			s.logger.WithError(err).Error("Scheduled simulation run failed")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"run_id": result.Run.ID.String(),
			"season": season,
			"week":   week,
		}).Info("Scheduled simulation run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled weekly simulation job")

	return nil
}

// SeasonWeek returns a WeekFunc that derives the week number from the season
// start date, one week per seven days, clamped to the regular season.
func SeasonWeek(season int, seasonStart time.Time, maxWeek int) WeekFunc {
	return func(now time.Time) (int, int) {
		week := int(now.Sub(seasonStart).Hours()/(24*7)) + 1
		if week < 1 {
			week = 1
		}
		if week > maxWeek {
			week = maxWeek
		}
		return season, week
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
