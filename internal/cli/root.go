package cli

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/config"
	"habit-tracker/internal/model"
	"habit-tracker/internal/notify"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

type Context struct {
	Config config.Config
}

// app holds the long-lived dependencies shared by the commands.
type app struct {
	db       *gorm.DB
	store    *repository.Store
	loc      *time.Location
	notifier service.Notifier
	// telegram is set when the Telegram channel is selected; it carries the
	// long-poll client.
	telegram *tgbotapi.BotAPI
	source   model.LogSource
}

func (ctx *Context) open(withMessaging bool) (*app, error) {
	cfg := ctx.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{loc: loc}
	if withMessaging {
		if err := cfg.ValidateMessaging(); err != nil {
			return nil, err
		}
		if err := a.connect(cfg); err != nil {
			return nil, err
		}
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.store = repository.NewStore(db)
	return a, nil
}

func (a *app) connect(cfg config.Config) error {
	switch cfg.Channel {
	case config.ChannelTelegram:
		sendAPI, err := bot.NewBotAPI(cfg.TelegramToken, cfg.SendTimeout)
		if err != nil {
			return err
		}
		pollAPI, err := bot.NewBotAPI(cfg.TelegramToken, bot.PollClientTimeout)
		if err != nil {
			return err
		}
		a.telegram = pollAPI
		a.notifier = notify.NewTelegram(sendAPI)
		a.source = model.SourceTelegram
	default:
		a.notifier = notify.NewEvolution(notify.EvolutionConfig{
			BaseURL:  cfg.Evolution.URL,
			APIKey:   cfg.Evolution.APIKey,
			Instance: cfg.Evolution.Instance,
			Timeout:  cfg.SendTimeout,
		})
		a.source = model.SourceWhatsApp
	}
	return nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *app) reminders(cfg config.Config) *service.ReminderService {
	return service.NewReminderService(a.store, a.notifier, service.ReminderOptions{
		Location:     a.loc,
		StoreTimeout: cfg.StoreTimeout,
		SendTimeout:  cfg.SendTimeout,
		Pace:         cfg.ReminderPace,
	})
}

// resolveUser accepts a profile id or a messaging address.
func (a *app) resolveUser(ctx context.Context, ref string) (*model.Profile, error) {
	profile, err := a.store.Profiles.FindByID(ctx, ref)
	if err == nil {
		return profile, nil
	}
	if byPhone, phoneErr := a.store.Profiles.FindByPhone(ctx, ref); phoneErr == nil {
		return byPhone, nil
	}
	return nil, fmt.Errorf("user %q: %w", ref, err)
}
