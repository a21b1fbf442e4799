package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
)

// SlackNotifier posts alerts to a Slack channel through the Web API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(token, channel string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

func (s *SlackNotifier) Notify(ctx context.Context, alert Alert) error {
	fields := make([]slack.AttachmentField, 0, len(alert.Failed)+2)
	fields = append(fields,
		slack.AttachmentField{Title: "Done today", Value: strconv.Itoa(alert.DoneCount), Short: true},
		slack.AttachmentField{Title: "To go", Value: strconv.Itoa(alert.ToGoCount), Short: true},
	)
	for _, sc := range alert.Failed {
		fields = append(fields, slack.AttachmentField{
			Title: fmt.Sprintf("#%d %s", sc.ID, sc.ReportName),
			Value: fmt.Sprintf("%s on %s", sc.ClientDatabase, sc.Server),
		})
	}

	attachment := slack.Attachment{
		Color:  "danger",
		Title:  alert.Title(),
		Fields: fields,
		Footer: "Schedules dashboard",
		Ts:     json.Number(strconv.FormatInt(time.Now().Unix(), 10)),
	}

	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(alert.Title(), false),
		slack.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return fmt.Errorf("slack notify: %w", err)
	}
	return nil
}
