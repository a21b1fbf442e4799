package notify

import (
	"context"
	"fmt"

	"companysite/internal/export"
	"companysite/internal/pkg/telegram"
)

// TelegramNotifier sends the alert text to a chat and attaches the failed
// schedules as a workbook.
type TelegramNotifier struct {
	api    *telegram.BotAPI
	chatID string
}

func NewTelegramNotifier(api *telegram.BotAPI, chatID string) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID}
}

func (n *TelegramNotifier) Notify(ctx context.Context, alert Alert) error {
	if err := n.api.SendMessage(ctx, n.chatID, alert.Text()); err != nil {
		return fmt.Errorf("telegram notify: %w", err)
	}

	data, err := export.Schedules(alert.Failed)
	if err != nil {
		return fmt.Errorf("telegram notify: %w", err)
	}
	if err := n.api.SendDocument(ctx, n.chatID, data, export.FileName("ScheduleErrors", alert.Day), alert.Title()); err != nil {
		return fmt.Errorf("telegram notify: %w", err)
	}
	return nil
}
