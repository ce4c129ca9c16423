package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"

	// ScheduleOff disables the in-process reminder schedule.
	ScheduleOff = "off"
)

// Config keeps runtime settings for the bot.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	Channel     string `yaml:"channel"`
	HTTPAddr    string `yaml:"http_addr"`
	Timezone    string `yaml:"timezone"`
	CronSecret  string `yaml:"cron_secret"`

	TelegramToken string `yaml:"telegram_token"`

	Evolution EvolutionConfig `yaml:"evolution"`

	ReminderSchedule string        `yaml:"reminder_cron"`
	ReminderPace     time.Duration `yaml:"reminder_pace"`
	StoreTimeout     time.Duration `yaml:"store_timeout"`
	SendTimeout      time.Duration `yaml:"send_timeout"`
	CongratsDelay    time.Duration `yaml:"congrats_delay"`

	LogFile string `yaml:"log_file"`
	Debug   bool   `yaml:"debug"`
}

// EvolutionConfig addresses the WhatsApp gateway.
type EvolutionConfig struct {
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Instance string `yaml:"instance"`
}

// Load reads the optional YAML file at path, applies environment overrides
// and fills defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Channel, "MESSAGING_CHANNEL")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.CronSecret, "CRON_SECRET")
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.Evolution.URL, "EVOLUTION_API_URL")
	setString(&c.Evolution.APIKey, "EVOLUTION_API_KEY")
	setString(&c.Evolution.Instance, "EVOLUTION_INSTANCE")
	setString(&c.ReminderSchedule, "REMINDER_CRON")
	setString(&c.LogFile, "LOG_FILE")

	for key, dst := range map[string]*time.Duration{
		"REMINDER_PACE":  &c.ReminderPace,
		"STORE_TIMEOUT":  &c.StoreTimeout,
		"SEND_TIMEOUT":   &c.SendTimeout,
		"CONGRATS_DELAY": &c.CongratsDelay,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DEBUG")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("DEBUG: %w", err)
		}
		c.Debug = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = "habits.db"
	}
	if c.Channel == "" {
		c.Channel = ChannelWhatsApp
	}
	c.Channel = strings.ToLower(c.Channel)
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.ReminderSchedule == "" {
		c.ReminderSchedule = "0 0 * * * *"
	}
	if c.ReminderPace == 0 {
		c.ReminderPace = 500 * time.Millisecond
	}
	if c.StoreTimeout == 0 {
		c.StoreTimeout = 5 * time.Second
	}
	if c.SendTimeout == 0 {
		c.SendTimeout = 10 * time.Second
	}
	if c.CongratsDelay == 0 {
		c.CongratsDelay = time.Second
	}
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	switch c.Channel {
	case ChannelWhatsApp, ChannelTelegram:
	default:
		return fmt.Errorf("unsupported messaging channel %q", c.Channel)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for name, d := range map[string]time.Duration{
		"reminder pace":  c.ReminderPace,
		"store timeout":  c.StoreTimeout,
		"send timeout":   c.SendTimeout,
		"congrats delay": c.CongratsDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// ValidateMessaging checks the credentials of the selected channel.
func (c Config) ValidateMessaging() error {
	switch c.Channel {
	case ChannelTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is required for the telegram channel")
		}
	default:
		if c.Evolution.URL == "" || c.Evolution.APIKey == "" || c.Evolution.Instance == "" {
			return fmt.Errorf("EVOLUTION_API_URL, EVOLUTION_API_KEY and EVOLUTION_INSTANCE are required for the whatsapp channel")
		}
	}
	return nil
}

// Location resolves the reference timezone for "today".
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ScheduleEnabled reports whether serve should run reminders in-process.
func (c Config) ScheduleEnabled() bool {
	return !strings.EqualFold(strings.TrimSpace(c.ReminderSchedule), ScheduleOff)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
