package bot

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"habit-tracker/internal/logger"
	"habit-tracker/internal/notify"
	"habit-tracker/internal/service"
)

const maxWebhookBody = 1 << 20

// MessageHandler answers inbound chat messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg service.InboundMessage) service.Outcome
}

// ReminderDispatcher runs one reminder window.
type ReminderDispatcher interface {
	Dispatch(ctx context.Context) (service.DispatchResult, error)
}

// Server exposes the WhatsApp webhook and the scheduled reminder trigger.
type Server struct {
	engine    MessageHandler
	reminders ReminderDispatcher
	auth      SecretAuthorizer
	timeout   time.Duration
}

func NewServer(engine MessageHandler, reminders ReminderDispatcher, auth SecretAuthorizer, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Server{engine: engine, reminders: reminders, auth: auth, timeout: timeout}
}

// Routes returns the HTTP handler tree. The WhatsApp webhook is only mounted
// when the server has an engine.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	if s.engine != nil {
		mux.HandleFunc("POST /api/webhooks/whatsapp", s.handleWebhook)
		mux.HandleFunc("GET /api/webhooks/whatsapp", s.handleWebhookCheck)
	}
	mux.HandleFunc("GET /api/cron/reminders", s.handleReminders)
	mux.HandleFunc("POST /api/cron/reminders", s.handleReminders)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	return mux
}

// evolutionWebhook is the subset of the Evolution API event payload we read.
type evolutionWebhook struct {
	Event    string `json:"event"`
	Instance string `json:"instance"`
	Data     struct {
		Key struct {
			RemoteJID string `json:"remoteJid"`
			FromMe    bool   `json:"fromMe"`
			ID        string `json:"id"`
		} `json:"key"`
		Message *struct {
			Conversation        string `json:"conversation"`
			ExtendedTextMessage *struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
		} `json:"message"`
	} `json:"data"`
}

func (e evolutionWebhook) text() string {
	m := e.Data.Message
	if m == nil {
		return ""
	}
	if m.Conversation != "" {
		return m.Conversation
	}
	if m.ExtendedTextMessage != nil {
		return m.ExtendedTextMessage.Text
	}
	return ""
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var body evolutionWebhook
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&body); err != nil {
		logger.Warn("invalid webhook payload", "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}

	if body.Event != "messages.upsert" {
		logger.Debug("ignoring webhook event", "event", body.Event)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	if body.Data.Key.FromMe {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	msg := service.InboundMessage{
		From: notify.PhoneFromJID(body.Data.Key.RemoteJID),
		Text: body.text(),
	}
	if msg.From == "" || strings.TrimSpace(msg.Text) == "" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	// The reply is sent even if the gateway stops waiting for us.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.timeout)
	defer cancel()
	s.engine.HandleMessage(ctx, msg)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleWebhookCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": "habit-tracker-whatsapp"})
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Authorize(r.Header.Get("Authorization")) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}

	res, err := s.reminders.Dispatch(r.Context())
	if errors.Is(err, context.Canceled) {
		logger.Warn("reminder run cancelled by caller", "window", res.Hour, "sent", res.Sent)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "cancelled"})
		return
	}
	if err != nil {
		logger.Error("reminder run", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "database error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"hour":    res.Hour,
		"sent":    res.Sent,
		"skipped": res.Skipped,
		"failed":  res.Failed,
	})
}

// SecretAuthorizer checks the bearer token of scheduled-trigger calls. An
// empty secret rejects every call.
type SecretAuthorizer struct {
	secret string
}

func NewSecretAuthorizer(secret string) SecretAuthorizer {
	return SecretAuthorizer{secret: secret}
}

func (a SecretAuthorizer) Authorize(header string) bool {
	if a.secret == "" {
		return false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.secret)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "err", err)
	}
}
