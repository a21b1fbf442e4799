// Package notify delivers schedule alerts to chat channels and webhooks.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"companysite/internal/models"
)

// Alert describes schedules due today whose last run failed.
type Alert struct {
	Day       time.Time         `json:"day"`
	Failed    []models.Schedule `json:"failed"`
	DoneCount int               `json:"doneCount"`
	ToGoCount int               `json:"toGoCount"`
}

// Title is the one-line headline of the alert.
func (a Alert) Title() string {
	return fmt.Sprintf("%d scheduled report(s) in error for %s", len(a.Failed), a.Day.Format("2006-01-02"))
}

// Lines renders one line per failed schedule.
func (a Alert) Lines() []string {
	lines := make([]string, 0, len(a.Failed))
	for _, s := range a.Failed {
		lines = append(lines, fmt.Sprintf("#%d %s on %s (%s), last run %s",
			s.ID, s.ReportName, s.ClientDatabase, s.Server, s.LastRunDate.Format("2006-01-02 15:04")))
	}
	return lines
}

func (a Alert) Text() string {
	return a.Title() + "\n" + strings.Join(a.Lines(), "\n")
}

// Notifier delivers an alert somewhere.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Multi is the set of configured alert channels. Each channel keeps its own
// delivery state, so one failing channel does not hold back the others.
type Multi []Notifier
