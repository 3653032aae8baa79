package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grantsy/licensegate/internal/infra/validation"
)

type Config struct {
	Env           string              `yaml:"env"           validate:"omitempty,oneof=dev prod"`
	Gate          GateConfig          `yaml:"gate"          validate:"required"`
	Store         StoreConfig         `yaml:"store"         validate:"required"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Admin         AdminConfig         `yaml:"admin"`
	Log           LogConfig           `yaml:"log"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

// GateConfig configures the license check itself.
type GateConfig struct {
	ServerURL       string `yaml:"server_url"       validate:"required,url"`
	UnhandledStatus string `yaml:"unhandled_status" validate:"omitempty,oneof=ignore terminate"`
	Timeout         string `yaml:"timeout"          validate:"omitempty,duration"`
	SingleFlight    bool   `yaml:"single_flight"`
}

// TimeoutDuration returns the parsed request timeout, zero when unset.
// Load rejects values that do not parse or are not positive.
func (g GateConfig) TimeoutDuration() time.Duration {
	if g.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(g.Timeout)
	return d
}

// StoreConfig selects where the "do not call again" flag is persisted.
type StoreConfig struct {
	Driver    string `yaml:"driver"    validate:"required,oneof=memory file sqlite postgres redis"`
	DSN       string `yaml:"dsn"       validate:"required_if=Driver sqlite,required_if=Driver postgres,required_if=Driver redis"`
	Namespace string `yaml:"namespace" validate:"omitempty,alphanum"`
}

type NotificationsConfig struct {
	Driver     string `yaml:"driver"     validate:"omitempty,oneof=log webhook none"`
	Authorized bool   `yaml:"authorized"`
	// SubmitTimeout bounds how long termination may wait on Add.
	SubmitTimeout string        `yaml:"submit_timeout" validate:"omitempty,duration"`
	Webhook       WebhookConfig `yaml:"webhook"`
}

// SubmitTimeoutDuration returns the parsed submit timeout.
func (n NotificationsConfig) SubmitTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(n.SubmitTimeout)
	return d
}

// WebhookConfig defines the endpoint that relays notifications to the user.
type WebhookConfig struct {
	URL    string `yaml:"url"    validate:"omitempty,url"`
	Secret string `yaml:"secret" validate:"required_with=URL"`
}

// AdminConfig configures the optional local status server.
type AdminConfig struct {
	Enable bool   `yaml:"enable"`
	Host   string `yaml:"host"    validate:"omitempty,ip|hostname"`
	Port   int    `yaml:"port"    validate:"omitempty,min=1,max=65535"`
	APIKey string `yaml:"api_key" validate:"required_if=Enable true"`
}

type LogConfig struct {
	Level  string `yaml:"level"  validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

type MetricsConfig struct {
	Enable    bool   `yaml:"enable"`
	GoMetrics bool   `yaml:"go_metrics"`
	Path      string `yaml:"path"       validate:"omitempty,startswith=/"`
}

const redacted = "[REDACTED]"

// LogValue hides the API key, the webhook secret and any password in the
// store DSN.
func (c Config) LogValue() slog.Value {
	type plain Config
	out := plain(c)
	if out.Admin.APIKey != "" {
		out.Admin.APIKey = redacted
	}
	if out.Notifications.Webhook.Secret != "" {
		out.Notifications.Webhook.Secret = redacted
	}
	if u, err := url.Parse(out.Store.DSN); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			out.Store.DSN = u.Redacted()
		}
	}
	return slog.AnyValue(out)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read file: %w", err)
	}

	// Expand environment variables in the config
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := validation.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	if cfg.Notifications.Driver == "webhook" && cfg.Notifications.Webhook.URL == "" {
		return nil, fmt.Errorf("config: validation failed: notifications.webhook.url is required for the webhook driver")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "prod"
	}
	if cfg.Gate.UnhandledStatus == "" {
		cfg.Gate.UnhandledStatus = "ignore"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "file"
	}
	if cfg.Notifications.Driver == "" {
		cfg.Notifications.Driver = "log"
	}
	if cfg.Notifications.SubmitTimeout == "" {
		cfg.Notifications.SubmitTimeout = "1s"
	}
	if cfg.Admin.Host == "" {
		cfg.Admin.Host = "127.0.0.1"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8787
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
