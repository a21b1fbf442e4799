package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

// BotAPI is a minimal Telegram Bot API client for outgoing alerts.
type BotAPI struct {
	client *resty.Client
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewBotAPI creates a client for the bot identified by token.
func NewBotAPI(token string) *BotAPI {
	return NewBotAPIWithBaseURL(token, defaultBaseURL)
}

// NewBotAPIWithBaseURL points the client at a Bot API compatible server.
func NewBotAPIWithBaseURL(token, baseURL string) *BotAPI {
	return &BotAPI{
		client: resty.New().SetBaseURL(baseURL + "/bot" + token),
	}
}

// SendMessage sends a plain text message.
func (b *BotAPI) SendMessage(ctx context.Context, chatID, text string) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"chat_id": chatID,
			"text":    text,
		}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram API call sendMessage failed: %w", err)
	}
	return check("sendMessage", resp.Body())
}

// SendDocument uploads data as a file with an optional caption.
func (b *BotAPI) SendDocument(ctx context.Context, chatID string, data []byte, filename, caption string) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetFileReader("document", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"chat_id": chatID,
			"caption": caption,
		}).
		Post("/sendDocument")
	if err != nil {
		return fmt.Errorf("telegram API call sendDocument failed: %w", err)
	}
	return check("sendDocument", resp.Body())
}

func check(method string, body []byte) error {
	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("telegram API call %s: invalid response: %w", method, err)
	}
	if !r.OK {
		if r.Description == "" {
			return fmt.Errorf("telegram API call %s failed", method)
		}
		return fmt.Errorf("telegram API call %s failed: %s", method, r.Description)
	}
	return nil
}
