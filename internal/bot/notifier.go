package bot

import (
	"context"
	"errors"

	"astrobot/internal/reminders"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends reminder messages through the bot's Telegram client.
type Notifier struct {
	tg telegramClient
}

// Notifier returns a reminders.Notifier sharing the bot's client.
func (b *Bot) Notifier() *Notifier {
	return &Notifier{tg: b.tg}
}

func (n *Notifier) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.tg.Send(tgbotapi.NewMessage(chatID, text))
	return convertError(err)
}

// convertError maps Telegram API failures to reminders.TelegramError so
// delivery can react to the status code.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &reminders.TelegramError{Code: apiErr.Code, Message: apiErr.Message, RetryAfter: apiErr.RetryAfter}
	}
	return err
}
