package notify

import (
	"context"
	"fmt"

	"companysite/internal/pkg/httpclient"
)

// WebhookNotifier posts the alert as JSON to a generic incoming webhook.
type WebhookNotifier struct {
	client *httpclient.Client
	url    string
}

func NewWebhookNotifier(url string, client *httpclient.Client) *WebhookNotifier {
	if client == nil {
		client = httpclient.New()
	}
	return &WebhookNotifier{client: client, url: url}
}

type webhookPayload struct {
	Text  string `json:"text"`
	Alert Alert  `json:"alert"`
}

func (w *WebhookNotifier) Notify(ctx context.Context, alert Alert) error {
	if _, err := w.client.PostJSON(ctx, w.url, webhookPayload{Text: alert.Text(), Alert: alert}); err != nil {
		return fmt.Errorf("webhook notify: %w", err)
	}
	return nil
}
