package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/service"
)

const shutdownTimeout = 15 * time.Second

type ServeCmd struct {
	Addr string `help:"HTTP listen address (overrides HTTP_ADDR)."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Addr != "" {
		cfg.HTTPAddr = c.Addr
	}

	a, err := ctx.open(true)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := service.NewCompletionService(a.store, a.notifier, service.CompletionOptions{
		Source:        a.source,
		Location:      a.loc,
		StoreTimeout:  cfg.StoreTimeout,
		SendTimeout:   cfg.SendTimeout,
		CongratsDelay: cfg.CongratsDelay,
	})
	defer engine.Wait()
	reminders := a.reminders(cfg)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	var webhookEngine bot.MessageHandler
	if a.telegram == nil {
		webhookEngine = engine
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           bot.NewServer(webhookEngine, reminders, bot.NewSecretAuthorizer(cfg.CronSecret), 0).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "channel", cfg.Channel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if a.telegram != nil {
		poller := bot.NewPoller(a.telegram, engine)
		g.Go(func() error {
			return poller.Start(gctx)
		})
	}

	if cfg.ScheduleEnabled() {
		scheduler := service.NewSchedulerService(a.loc)
		id, err := scheduler.Schedule(cfg.ReminderSchedule, func() {
			jobCtx, cancel := context.WithTimeout(gctx, 30*time.Minute)
			defer cancel()
			res, err := reminders.Dispatch(jobCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduled reminders", "err", err)
			}
			logger.Debug("scheduled reminders done", "window", res.Hour, "sent", res.Sent, "skipped", res.Skipped)
		})
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("reminder schedule started", "spec", cfg.ReminderSchedule, "next", scheduler.Next(id))
	}

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}
