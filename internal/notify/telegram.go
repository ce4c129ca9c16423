package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends plain-text messages to Telegram chats; the address is the
// decimal chat id.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

func (t *Telegram) Send(ctx context.Context, chat, text string) error {
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chat, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
		done <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send telegram message: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send telegram message: %w", err)
		}
		return nil
	}
}
