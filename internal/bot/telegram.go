package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habit-tracker/internal/logger"
	"habit-tracker/internal/service"
)

// commandAliases maps Telegram slash commands to the chat phrases the
// classifier understands.
var commandAliases = map[string]string{
	"start":     "ajuda",
	"help":      "ajuda",
	"ajuda":     "ajuda",
	"status":    "status",
	"pendentes": "pendentes",
	"feito":     "feito",
}

// Poller receives Telegram updates and hands private text messages to the
// completion engine. The sender address is the decimal chat id.
type Poller struct {
	api    *tgbotapi.BotAPI
	engine MessageHandler
	wg     sync.WaitGroup
}

const (
	pollTimeout = 60
	// PollClientTimeout bounds a long-poll request: the server-side wait plus slack.
	PollClientTimeout = (pollTimeout + 15) * time.Second
)

// NewBotAPI authorizes token against Telegram. Every request made through
// the returned API is bounded by timeout.
func NewBotAPI(token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	return newBotAPI(token, tgbotapi.APIEndpoint, timeout)
}

func newBotAPI(token, endpoint string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Info("bot authorized", "account", api.Self.UserName)
	return api, nil
}

func NewPoller(api *tgbotapi.BotAPI, engine MessageHandler) *Poller {
	return &Poller{api: api, engine: engine}
}

// Start polls updates until ctx is cancelled and waits for in-flight
// messages before returning.
func (p *Poller) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updates := p.api.GetUpdatesChan(updateConfig)

	logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		p.api.StopReceivingUpdates()
	}()

	for update := range updates {
		msg, ok := inboundFromTelegram(update.Message, p.api.Self.ID)
		if !ok {
			continue
		}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.engine.HandleMessage(context.WithoutCancel(ctx), msg)
		}()
	}

	p.wg.Wait()
	return nil
}

func inboundFromTelegram(msg *tgbotapi.Message, selfID int64) (service.InboundMessage, bool) {
	if msg == nil || msg.Chat == nil || !msg.Chat.IsPrivate() || msg.From == nil {
		return service.InboundMessage{}, false
	}

	text := msg.Text
	if msg.IsCommand() {
		alias, ok := commandAliases[strings.ToLower(msg.Command())]
		if !ok {
			alias = msg.Command()
		}
		text = strings.TrimSpace(alias + " " + msg.CommandArguments())
	}
	if strings.TrimSpace(text) == "" {
		return service.InboundMessage{}, false
	}

	return service.InboundMessage{
		From:   strconv.FormatInt(msg.Chat.ID, 10),
		Text:   text,
		FromMe: msg.From.ID == selfID,
	}, true
}
