package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EvolutionConfig addresses an Evolution API (WhatsApp) instance.
type EvolutionConfig struct {
	BaseURL  string
	APIKey   string
	Instance string
	Timeout  time.Duration
}

// Evolution sends WhatsApp text messages through the Evolution API.
type Evolution struct {
	cfg    EvolutionConfig
	client *http.Client
}

var ErrNotConfigured = errors.New("evolution api not configured")

func NewEvolution(cfg EvolutionConfig) *Evolution {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Evolution{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Send posts text to the given phone number.
func (e *Evolution) Send(ctx context.Context, phone, text string) error {
	if e.cfg.BaseURL == "" || e.cfg.APIKey == "" || e.cfg.Instance == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendTextRequest{Number: phone, Text: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", e.cfg.BaseURL, e.cfg.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", e.cfg.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send message: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// PhoneFromJID strips the WhatsApp JID suffix from a remote address.
func PhoneFromJID(jid string) string {
	jid = strings.ReplaceAll(jid, "@s.whatsapp.net", "")
	return strings.ReplaceAll(jid, "@c.us", "")
}
