package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"companysite/internal/dashboard"
	"companysite/internal/models"
	"companysite/internal/notify"
)

type stubViews struct {
	view     dashboard.View
	err      error
	category dashboard.Category
	todayOn  bool
}

func (s *stubViews) Load(_ context.Context, todayOnly bool, category dashboard.Category, _ time.Time) (dashboard.View, error) {
	s.todayOn = todayOnly
	s.category = category
	return s.view, s.err
}

type recordingNotifier struct {
	alerts []notify.Alert
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, a notify.Alert) error {
	if r.err != nil {
		return r.err
	}
	r.alerts = append(r.alerts, a)
	return nil
}

func newTestScheduler(views *stubViews, notifiers ...notify.Notifier) *Scheduler {
	s := New("0 */5 * * * *", views, notify.Multi(notifiers), time.UTC, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC) }
	return s
}

func failed(id uint, lastRun time.Time) models.Schedule {
	return models.Schedule{ID: id, ReportName: "Report", LastRunDate: lastRun, LastRunState: models.RunStateError}
}

func TestCheck_NotifiesOncePerRun(t *testing.T) {
	run := time.Date(2024, 3, 19, 6, 0, 0, 0, time.UTC)
	views := &stubViews{view: dashboard.View{Schedules: []models.Schedule{failed(2, run)}, ToGoCount: 3}}
	n := &recordingNotifier{}
	s := newTestScheduler(views, n)

	require.NoError(t, s.check(context.Background()))
	assert.True(t, views.todayOn)
	assert.Equal(t, dashboard.CategoryErrors, views.category)
	require.Len(t, n.alerts, 1)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), n.alerts[0].Day)
	assert.Equal(t, 3, n.alerts[0].ToGoCount)

	require.NoError(t, s.check(context.Background()))
	assert.Len(t, n.alerts, 1)

	// Same schedule, new failed run.
	views.view.Schedules = []models.Schedule{failed(2, run.Add(time.Hour)), failed(2, run)}
	require.NoError(t, s.check(context.Background()))
	require.Len(t, n.alerts, 2)
	require.Len(t, n.alerts[1].Failed, 1)
	assert.Equal(t, run.Add(time.Hour), n.alerts[1].Failed[0].LastRunDate)
}

func TestCheck_RetriesAfterDeliveryFailure(t *testing.T) {
	run := time.Date(2024, 3, 19, 6, 0, 0, 0, time.UTC)
	views := &stubViews{view: dashboard.View{Schedules: []models.Schedule{failed(5, run)}}}
	n := &recordingNotifier{err: errors.New("slack down")}
	s := newTestScheduler(views, n)

	assert.EqualError(t, s.check(context.Background()), "slack down")

	n.err = nil
	require.NoError(t, s.check(context.Background()))
	assert.Len(t, n.alerts, 1)
}

func TestCheck_FailingChannelDoesNotRepeatOthers(t *testing.T) {
	run := time.Date(2024, 3, 19, 6, 0, 0, 0, time.UTC)
	views := &stubViews{view: dashboard.View{Schedules: []models.Schedule{failed(7, run)}}}
	slack := &recordingNotifier{}
	webhook := &recordingNotifier{err: errors.New("webhook down")}
	s := newTestScheduler(views, slack, webhook)

	for i := 0; i < 4; i++ {
		assert.EqualError(t, s.check(context.Background()), "webhook down")
	}
	assert.Len(t, slack.alerts, 1)
	assert.Empty(t, webhook.alerts)

	webhook.err = nil
	require.NoError(t, s.check(context.Background()))
	assert.Len(t, slack.alerts, 1)
	require.Len(t, webhook.alerts, 1)
	assert.Equal(t, uint(7), webhook.alerts[0].Failed[0].ID)

	require.NoError(t, s.check(context.Background()))
	assert.Len(t, slack.alerts, 1)
	assert.Len(t, webhook.alerts, 1)
}

func TestCheck_ForgetsRunsThatLeftTheView(t *testing.T) {
	run := time.Date(2024, 3, 19, 6, 0, 0, 0, time.UTC)
	views := &stubViews{view: dashboard.View{Schedules: []models.Schedule{failed(1, run), failed(2, run)}}}
	n := &recordingNotifier{}
	s := newTestScheduler(views, n)

	require.NoError(t, s.check(context.Background()))
	assert.Len(t, s.seen[0], 2)

	// Schedule 1 was rerun successfully.
	views.view.Schedules = []models.Schedule{failed(2, run)}
	require.NoError(t, s.check(context.Background()))
	assert.Len(t, s.seen[0], 1)
	assert.Len(t, n.alerts, 1)

	views.view.Schedules = nil
	require.NoError(t, s.check(context.Background()))
	assert.Empty(t, s.seen[0])
}

func TestCheck_LoadFailure(t *testing.T) {
	n := &recordingNotifier{}
	s := newTestScheduler(&stubViews{err: errors.New("db gone")}, n)

	assert.EqualError(t, s.check(context.Background()), "db gone")
	assert.Empty(t, n.alerts)
}

func TestCheck_NothingFailed(t *testing.T) {
	n := &recordingNotifier{}
	s := newTestScheduler(&stubViews{}, n)

	require.NoError(t, s.check(context.Background()))
	assert.Empty(t, n.alerts)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New("every now and then", &stubViews{}, notify.Multi{&recordingNotifier{}}, nil, zap.NewNop())
	assert.Error(t, s.Start())
}

func TestWatch_RecoversFromPanic(t *testing.T) {
	s := newTestScheduler(&stubViews{}, &recordingNotifier{})
	s.views = nil
	assert.NotPanics(t, s.watch)
}
