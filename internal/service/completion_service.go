package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"habit-tracker/internal/intent"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

// InboundMessage is a text received from the messaging channel.
type InboundMessage struct {
	From   string
	Text   string
	FromMe bool
}

// Outcome describes what the engine decided for one message. An empty Reply
// means the message was dropped without answering.
type Outcome struct {
	Intent intent.Result
	Reply  string
	// Logged is set when a completion log was inserted.
	Logged *model.HabitLog
	// PerfectDay is set when the insert left no pending habits.
	PerfectDay bool
}

// CompletionOptions tunes the engine. Zero values fall back to defaults.
type CompletionOptions struct {
	Source        model.LogSource
	Location      *time.Location
	StoreTimeout  time.Duration
	SendTimeout   time.Duration
	CongratsDelay time.Duration
	// Pick returns an index in [0, n); used to vary affirmation replies.
	Pick func(n int) int
	Now  func() time.Time
}

// CompletionService turns chat messages into habit completions and replies.
// It keeps no per-user state between messages.
type CompletionService struct {
	store    CompletionStore
	notifier Notifier
	opts     CompletionOptions
	bg       sync.WaitGroup
}

func NewCompletionService(store CompletionStore, notifier Notifier, opts CompletionOptions) *CompletionService {
	if opts.Source == "" {
		opts.Source = model.SourceWhatsApp
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Pick == nil {
		opts.Pick = rand.IntN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CompletionService{store: store, notifier: notifier, opts: opts}
}

// HandleMessage processes msg, sends the reply and, after a perfect day,
// schedules the congratulation. It never fails; problems are logged.
func (s *CompletionService) HandleMessage(ctx context.Context, msg InboundMessage) Outcome {
	out := s.Process(ctx, msg)
	if out.Reply == "" {
		return out
	}

	if err := s.send(ctx, msg.From, out.Reply); err != nil {
		logger.Error("send reply", "sender", msg.From, "intent", out.Intent.Intent.Type, "err", err)
	}
	if out.PerfectDay {
		s.congratulate(msg.From)
	}
	return out
}

// Wait blocks until background congratulation sends have finished.
func (s *CompletionService) Wait() {
	s.bg.Wait()
}

// Process classifies msg and applies it to the store without sending anything.
func (s *CompletionService) Process(ctx context.Context, msg InboundMessage) Outcome {
	if msg.FromMe || strings.TrimSpace(msg.Text) == "" {
		return Outcome{}
	}

	profile, ok := s.authorize(ctx, msg.From)
	if !ok {
		return Outcome{}
	}

	today := model.Day(s.opts.Now(), s.opts.Location)
	loadCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
	habits, err := s.store.ListActiveHabits(loadCtx, profile.ID, today)
	cancel()
	if err != nil {
		logger.Error("load habits", "sender", msg.From, "user", profile.ID, "err", err)
		return Outcome{Reply: msgGenericError}
	}
	statuses := model.WithStatus(habits, today)

	res := intent.Classify(msg.Text)
	logger.Info("message classified", "sender", msg.From, "intent", res.Intent.Type, "confidence", res.Confidence)

	out := Outcome{Intent: res}
	switch res.Intent.Type {
	case intent.MarkDone:
		s.markDone(ctx, &out, msg.From, statuses, res.Intent.HabitHint, today)
	case intent.ListPending:
		out.Reply = listPendingHabits(statuses)
	case intent.Status:
		out.Reply = statusMessage(statuses)
	case intent.Help:
		out.Reply = helpMessage()
	default:
		out.Reply = msgUnknown
	}
	return out
}

func (s *CompletionService) authorize(ctx context.Context, sender string) (*model.Profile, bool) {
	lookupCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
	defer cancel()

	profile, err := s.store.FindProfileByPhone(lookupCtx, sender)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.Info("message from unknown sender dropped", "sender", sender)
		return nil, false
	case err != nil:
		logger.Error("find profile", "sender", sender, "err", err)
		return nil, false
	case !profile.MessagingEnabled:
		logger.Info("message from disabled profile dropped", "sender", sender, "user", profile.ID)
		return nil, false
	}
	return profile, true
}

func (s *CompletionService) markDone(ctx context.Context, out *Outcome, sender string, habits []model.HabitWithStatus, hint, today string) {
	pending := model.Pending(habits)
	if len(pending) == 0 {
		out.Reply = msgAllDone
		return
	}

	var target model.HabitWithStatus
	switch {
	case hint != "":
		found, ok := ResolveHabit(pending, hint)
		if !ok {
			if done, ok := ResolveHabit(model.Completed(habits), hint); ok {
				out.Reply = habitAlreadyDone(done.Name)
			} else {
				out.Reply = habitNotFound(hint)
			}
			return
		}
		target = found
	case len(pending) == 1:
		target = pending[0]
	default:
		out.Reply = askWhichHabit(pending)
		return
	}

	entry := &model.HabitLog{HabitID: target.ID, CompletedAt: today, Source: s.opts.Source}
	writeCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
	created, err := s.store.CreateLog(writeCtx, entry)
	cancel()
	if err != nil {
		logger.Error("create habit log", "sender", sender, "habit", target.ID, "err", err)
		out.Reply = msgGenericError
		return
	}
	if !created {
		// A concurrent message completed it between load and insert.
		out.Reply = habitAlreadyDone(target.Name)
		return
	}

	logger.Info("habit completed", "sender", sender, "habit", target.ID, "source", entry.Source)
	out.Logged = entry
	out.Reply = habitMarkedDone(target.Name, s.opts.Pick)
	out.PerfectDay = len(pending) == 1
}

func (s *CompletionService) send(ctx context.Context, to, text string) error {
	sendCtx, cancel := bounded(ctx, s.opts.SendTimeout)
	defer cancel()
	return s.notifier.Send(sendCtx, to, text)
}

func (s *CompletionService) congratulate(to string) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		if s.opts.CongratsDelay > 0 {
			time.Sleep(s.opts.CongratsDelay)
		}
		if err := s.send(context.Background(), to, msgPerfectDay); err != nil {
			logger.Warn("send congratulation", "sender", to, "err", err)
		}
	}()
}
