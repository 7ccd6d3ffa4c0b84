// Package config
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address   string `yaml:"address" validate:"required"`
	Mode      string `yaml:"-" validate:"oneof=serve snapshot watch"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	CPUScanInterval time.Duration `yaml:"cpu_scan_interval" validate:"min=0s"`
	NetSampleWindow time.Duration `yaml:"net_sample_window" validate:"min=100ms"`
	NetIgnoreIfaces []string      `yaml:"net_ignore_ifaces"`
	DiskPath        string        `yaml:"disk_path"`
	GPUEnabled      bool          `yaml:"gpu_enabled"`
	UnitDivisor     uint64        `yaml:"unit_divisor" validate:"min=1"`
	WatchInterval   time.Duration `yaml:"watch_interval" validate:"min=100ms"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	PushURL         string        `yaml:"push_url" validate:"omitempty,url"`
	PushInterval    time.Duration `yaml:"push_interval" validate:"min=1s"`
	PushTimeout     time.Duration `yaml:"push_timeout" validate:"min=100ms"`
	AgentID         uuid.UUID     `yaml:"agent_id"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0s"`
	ConfigFile      string        `yaml:"-"`
}

const (
	ModeServe    = "serve"
	ModeSnapshot = "snapshot"
	ModeWatch    = "watch"
)

func Default() *Config {
	return &Config{
		Address:         ":3000",
		Mode:            ModeServe,
		LogLevel:        "info",
		LogFormat:       "text",
		NetSampleWindow: time.Second,
		NetIgnoreIfaces: []string{"lo"},
		GPUEnabled:      true,
		UnitDivisor:     1024 * 1024,
		WatchInterval:   2 * time.Second,
		PushInterval:    time.Minute,
		PushTimeout:     10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (a .env file is honored), in that
// order of precedence from lowest to highest.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.AgentID == uuid.Nil {
		cfg.AgentID = uuid.New()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("DISK_PATH"); v != "" {
		c.DiskPath = v
	}
	if v := os.Getenv("PUSH_URL"); v != "" {
		c.PushURL = v
	}
	if v := os.Getenv("NET_IGNORE_IFACES"); v != "" {
		c.NetIgnoreIfaces = splitList(v)
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CPU_SCAN_INTERVAL", &c.CPUScanInterval},
		{"NET_SAMPLE_WINDOW", &c.NetSampleWindow},
		{"WATCH_INTERVAL", &c.WatchInterval},
		{"PUSH_INTERVAL", &c.PushInterval},
		{"PUSH_TIMEOUT", &c.PushTimeout},
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
	}
	for _, d := range durations {
		raw := os.Getenv(d.key)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v := os.Getenv("GPU_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GPU_ENABLED: %w", err)
		}
		c.GPUEnabled = enabled
	}

	if v := os.Getenv("UNIT_DIVISOR"); v != "" {
		divisor, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UNIT_DIVISOR: %w", err)
		}
		c.UnitDivisor = divisor
	}

	if v := os.Getenv("AGENT_ID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid AGENT_ID: %w", err)
		}
		c.AgentID = id
	}

	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return c.validateTiming()
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// validateTiming rejects a push interval that one blocking sample (network
// window plus CPU scan) would fill entirely.
func (c *Config) validateTiming() error {
	if minimum := c.NetSampleWindow + c.CPUScanInterval; c.PushInterval <= minimum {
		return fmt.Errorf("invalid config: PushInterval (%s) must be greater than NetSampleWindow + CPUScanInterval (%s)", c.PushInterval, minimum)
	}
	return nil
}

func (c *Config) PushEnabled() bool {
	return c.PushURL != ""
}

func splitList(raw string) []string {
	out := []string{}
	for s := range strings.SplitSeq(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
