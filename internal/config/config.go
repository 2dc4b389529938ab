package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"astrobot/internal/model"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"telegram"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup BackupConfig `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		PatternTTLHours int    `yaml:"pattern_ttl_hours"`
		LockTTLSeconds  int    `yaml:"lock_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Content ContentConfig `yaml:"content"`

	Tarot struct {
		// WindowDays is how many calendar days a drawn card stays fixed.
		// 1 gives a daily card, 7 a weekly one.
		WindowDays int `yaml:"window_days"`
	} `yaml:"tarot"`

	Reminders RemindersConfig `yaml:"reminders"`

	TextGen TextGenConfig `yaml:"textgen"`

	Managers []int64 `yaml:"managers"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	IntervalHours int    `yaml:"interval_hours"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type ContentConfig struct {
	Timezone          string       `yaml:"timezone"`
	Languages         []model.Lang `yaml:"languages"`
	DefaultLanguage   model.Lang   `yaml:"default_language"`
	HistorySize       int          `yaml:"history_size"`
	AntiRepeatWindow  int          `yaml:"anti_repeat_window"`
	MaxRetries        int          `yaml:"max_retries"`
	QuoteNoRepeatDays int          `yaml:"quote_no_repeat_days"`
	ImagesDir         string       `yaml:"images_dir"`
}

type RemindersConfig struct {
	ScanIntervalSeconds int      `yaml:"scan_interval_seconds"`
	DefaultTime         string   `yaml:"default_time"`
	TimeSlots           []string `yaml:"time_slots"`
	RatePerSecond       float64  `yaml:"rate_per_second"`
	Burst               int      `yaml:"burst"`
}

type TextGenConfig struct {
	Provider       string `yaml:"provider"` // none, openai, gemini
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "data/astrobot.db"
	}
	if c.Backup.Path == "" {
		c.Backup.Path = "backups"
	}
	if c.Backup.IntervalHours <= 0 {
		c.Backup.IntervalHours = 24
	}
	if c.Backup.RetentionDays <= 0 {
		c.Backup.RetentionDays = 14
	}
	if c.Redis.PatternTTLHours <= 0 {
		c.Redis.PatternTTLHours = 48
	}
	if c.Redis.LockTTLSeconds <= 0 {
		c.Redis.LockTTLSeconds = 10
	}
	if c.Monitoring.HealthCheckPort == 0 {
		c.Monitoring.HealthCheckPort = 8090
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Content.Timezone == "" {
		c.Content.Timezone = "Europe/Madrid"
	}
	if len(c.Content.Languages) == 0 {
		c.Content.Languages = []model.Lang{model.LangEN, model.LangRU, model.LangES}
	}
	if c.Content.DefaultLanguage == "" {
		c.Content.DefaultLanguage = model.LangEN
	}
	if c.Content.HistorySize == 0 {
		c.Content.HistorySize = 60
	}
	if c.Content.AntiRepeatWindow == 0 {
		c.Content.AntiRepeatWindow = 14
	}
	if c.Content.MaxRetries == 0 {
		c.Content.MaxRetries = 10
	}
	if c.Content.QuoteNoRepeatDays == 0 {
		c.Content.QuoteNoRepeatDays = 60
	}

	if c.Tarot.WindowDays == 0 {
		c.Tarot.WindowDays = 1
	}

	if c.Reminders.ScanIntervalSeconds == 0 {
		c.Reminders.ScanIntervalSeconds = 60
	}
	if c.Reminders.DefaultTime == "" {
		c.Reminders.DefaultTime = "09:00"
	}
	if len(c.Reminders.TimeSlots) == 0 {
		c.Reminders.TimeSlots = []string{"06:00", "07:00", "08:00", "09:00", "10:00"}
	}
	if c.Reminders.RatePerSecond <= 0 {
		c.Reminders.RatePerSecond = 20
	}
	if c.Reminders.Burst <= 0 {
		c.Reminders.Burst = 30
	}

	if c.TextGen.Provider == "" {
		c.TextGen.Provider = "none"
	}
	if c.TextGen.TimeoutSeconds <= 0 {
		c.TextGen.TimeoutSeconds = 20
	}
}

// Validate checks the values the core relies on at runtime.
func (c *Config) Validate() error {
	var errs []error

	if _, err := time.LoadLocation(c.Content.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("content.timezone: %w", err))
	}

	supported := []model.Lang{model.LangEN, model.LangRU, model.LangES}
	for _, l := range c.Content.Languages {
		if _, err := model.ParseLang(string(l), supported); err != nil {
			errs = append(errs, fmt.Errorf("content.languages: %q: %w", l, err))
		}
	}
	if _, err := model.ParseLang(string(c.Content.DefaultLanguage), c.Content.Languages); err != nil {
		errs = append(errs, fmt.Errorf("content.default_language %q not in content.languages", c.Content.DefaultLanguage))
	}

	if c.Content.AntiRepeatWindow < 1 {
		errs = append(errs, errors.New("content.anti_repeat_window must be >= 1"))
	}
	if c.Content.HistorySize < c.Content.AntiRepeatWindow {
		errs = append(errs, errors.New("content.history_size must be >= content.anti_repeat_window"))
	}
	if c.Content.MaxRetries < 1 {
		errs = append(errs, errors.New("content.max_retries must be >= 1"))
	}
	if c.Content.QuoteNoRepeatDays < 0 {
		errs = append(errs, errors.New("content.quote_no_repeat_days must be >= 0"))
	}

	if c.Tarot.WindowDays < 1 {
		errs = append(errs, errors.New("tarot.window_days must be >= 1"))
	}

	if c.Reminders.ScanIntervalSeconds < 1 {
		errs = append(errs, errors.New("reminders.scan_interval_seconds must be >= 1"))
	}
	if _, err := model.ParseClock(c.Reminders.DefaultTime); err != nil {
		errs = append(errs, fmt.Errorf("reminders.default_time: %w", err))
	}
	for _, slot := range c.Reminders.TimeSlots {
		if _, err := model.ParseClock(slot); err != nil {
			errs = append(errs, fmt.Errorf("reminders.time_slots %q: %w", slot, err))
		}
	}

	switch c.TextGen.Provider {
	case "none":
	case "openai", "gemini":
		if c.TextGen.APIKey == "" {
			errs = append(errs, fmt.Errorf("textgen.api_key is required for provider %q", c.TextGen.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("textgen.provider %q is not supported", c.TextGen.Provider))
	}

	return errors.Join(errs...)
}

// Location returns the reference timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Content.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) DefaultNotifyTime() model.ClockTime {
	t, err := model.ParseClock(c.Reminders.DefaultTime)
	if err != nil {
		return model.ClockTime{Hour: 9}
	}
	return t
}

func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Reminders.ScanIntervalSeconds) * time.Second
}

func (c *Config) PatternTTL() time.Duration {
	return time.Duration(c.Redis.PatternTTLHours) * time.Hour
}

func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Redis.LockTTLSeconds) * time.Second
}

func (c *Config) TextGenTimeout() time.Duration {
	return time.Duration(c.TextGen.TimeoutSeconds) * time.Second
}
