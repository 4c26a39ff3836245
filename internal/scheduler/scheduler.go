// Package scheduler drives the timer-based background jobs: the auto-sync
// push loop and the weekly reporting export.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/repository/file"
	"github.com/mamadbah2/labeltracker/internal/service/reporting"
	syncmgr "github.com/mamadbah2/labeltracker/internal/sync"
)

const defaultSyncInterval = 30 * time.Second

// weekly report: Friday 20:00 local time
const weeklyReportSpec = "0 20 * * 5"

// Scheduler owns the cron instance and re-arms it whenever the persisted
// system configuration changes. At most one push is ever in flight: a tick
// arriving while a sync is still running is skipped, not queued.
type Scheduler struct {
	store        *file.Store
	syncManager  *syncmgr.Manager
	reportingSvc *reporting.Service
	logger       *zap.Logger
	interval     time.Duration

	mu          sync.Mutex
	cron        *cron.Cron
	unsubscribe func()
}

// NewScheduler builds a scheduler; reportingSvc may be nil when the sheet
// export integration is not configured.
func NewScheduler(store *file.Store, syncManager *syncmgr.Manager, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		store:        store,
		syncManager:  syncManager,
		reportingSvc: reportingSvc,
		logger:       logger,
		interval:     defaultSyncInterval,
	}
}

// SetInterval overrides the auto-sync cadence. Must be called before Start.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.interval = d
}

// Start arms the jobs and subscribes to config changes so the sync loop is
// torn down and rebuilt whenever the operator edits the settings.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	s.mu.Lock()
	s.unsubscribe = s.store.Subscribe(func(ev file.Event) {
		if ev == file.EventConfig {
			s.Rearm()
		}
	})
	s.mu.Unlock()

	s.Rearm()
}

// Rearm deterministically clears the current cron instance and builds a new
// one from the latest configuration, so duplicate concurrent timers cannot
// exist.
func (s *Scheduler) Rearm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}

	cfg := s.store.LoadConfig()
	cronLogger := &zapCronLogger{logger: s.logger}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger)))

	armed := false
	if cfg.IsAutoSyncEnabled && cfg.ServerURL != "" {
		c.Schedule(constantSchedule{delay: s.interval}, cron.FuncJob(s.runSync))
		armed = true
		s.logger.Info("auto-sync armed", zap.String("server", cfg.ServerURL), zap.Duration("interval", s.interval))
	}

	if s.reportingSvc != nil {
		if _, err := c.AddFunc(weeklyReportSpec, s.runWeeklyReport); err != nil {
			s.logger.Error("failed to schedule weekly report", zap.Error(err))
		} else {
			armed = true
		}
	}

	if armed {
		c.Start()
		s.cron = c
	}
}

// Stop tears down the cron instance and the config subscription, leaving no
// dangling timers behind.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := s.syncManager.Push(ctx)
	if result.Success {
		s.logger.Info("auto-sync completed", zap.String("message", result.Message))
	} else {
		s.logger.Warn("auto-sync failed", zap.String("message", result.Message))
	}
}

func (s *Scheduler) runWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.reportingSvc.ExportWeeklySummary(ctx, s.store.Load()); err != nil {
		s.logger.Error("failed to export weekly summary", zap.Error(err))
		return
	}
	s.logger.Info("weekly summary exported")
}

// constantSchedule fires at a fixed delay after each activation. cron's
// @every spec rounds delays up to a whole second; this keeps shorter delays
// intact so the interval can be tightened in tests.
type constantSchedule struct {
	delay time.Duration
}

func (cs constantSchedule) Next(t time.Time) time.Time {
	return t.Add(cs.delay)
}

// zapCronLogger adapts zap to cron's logging interface so skipped overlapping
// ticks show up in the structured log.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l *zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (l *zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
