package cron

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"companysite/internal/dashboard"
	"companysite/internal/notify"
)

// ViewLoader builds the dashboard view from fresh data.
type ViewLoader interface {
	Load(ctx context.Context, todayOnly bool, category dashboard.Category, today time.Time) (dashboard.View, error)
}

// Scheduler runs the schedule watch job.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	logger    *zap.Logger
	views     ViewLoader
	notifiers notify.Multi
	location  *time.Location
	now       func() time.Time
	timeout   time.Duration

	mu sync.Mutex
	// seen[i] holds the runs already delivered through notifiers[i].
	seen []map[runKey]struct{}
}

// runKey identifies one run of one schedule. A schedule alerts once per
// failed run; a rerun that fails again has a new LastRunDate and alerts again.
type runKey struct {
	id      uint
	lastRun time.Time
}

// New creates a new cron scheduler. spec uses the six field format with
// seconds.
func New(spec string, views ViewLoader, notifiers notify.Multi, location *time.Location, logger *zap.Logger) *Scheduler {
	if location == nil {
		location = time.Local
	}
	seen := make([]map[runKey]struct{}, len(notifiers))
	for i := range seen {
		seen[i] = make(map[runKey]struct{})
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		spec:      spec,
		logger:    logger,
		views:     views,
		notifiers: notifiers,
		location:  location,
		now:       time.Now,
		timeout:   time.Minute,
		seen:      seen,
	}
}

// Start registers and starts the watch job.
func (s *Scheduler) Start() error {
	s.logger.Info("Starting cron scheduler...", zap.String("spec", s.spec))

	if _, err := s.cron.AddFunc(s.spec, func() {
		s.logger.Debug("Running: schedule watch")
		s.watch()
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Cron scheduler started")
	return nil
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) watch() {
	defer s.recoverFromPanic("watch")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.check(ctx); err != nil {
		s.logger.Warn("Schedule watch failed", zap.Error(err))
	}
}

// check loads today's failed schedules and sends every channel the runs it
// has not delivered yet. A channel whose delivery fails gets the same runs
// again on the next tick; the other channels are not repeated. Runs that left
// the failed view are forgotten.
func (s *Scheduler) check(ctx context.Context) error {
	today := s.now().In(s.location)

	view, err := s.views.Load(ctx, true, dashboard.CategoryErrors, today)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[runKey]struct{}, len(view.Schedules))
	for _, sc := range view.Schedules {
		current[runKey{id: sc.ID, lastRun: sc.LastRunDate}] = struct{}{}
	}

	var errs []error
	for i, n := range s.notifiers {
		seen := s.seen[i]
		for key := range seen {
			if _, ok := current[key]; !ok {
				delete(seen, key)
			}
		}

		alert := notify.Alert{
			Day:       time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.location),
			DoneCount: view.DoneCount,
			ToGoCount: view.ToGoCount,
		}
		var keys []runKey
		for _, sc := range view.Schedules {
			key := runKey{id: sc.ID, lastRun: sc.LastRunDate}
			if _, ok := seen[key]; ok {
				continue
			}
			keys = append(keys, key)
			alert.Failed = append(alert.Failed, sc)
		}
		if len(alert.Failed) == 0 {
			continue
		}

		if err := n.Notify(ctx, alert); err != nil {
			s.logger.Warn("Schedule alert delivery failed", zap.Int("channel", i), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		for _, key := range keys {
			seen[key] = struct{}{}
		}
		s.logger.Info("Schedule alert sent", zap.Int("channel", i), zap.Int("failed", len(alert.Failed)))
	}
	return errors.Join(errs...)
}

func (s *Scheduler) recoverFromPanic(jobName string) {
	if r := recover(); r != nil {
		s.logger.Error("Cron job panicked", zap.String("job", jobName), zap.Any("error", r))
	}
}
