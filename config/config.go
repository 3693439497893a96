package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Refresh RefreshConfig `yaml:"refresh"`
	Search  SearchConfig  `yaml:"search"`
	Delay   DelayConfig   `yaml:"delay"`
	MockAPI MockAPIConfig `yaml:"mock_api"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type SessionConfig struct {
	StoragePath string `yaml:"storage_path"`
}

type RefreshConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	RebookDelayMillis   int `yaml:"rebook_delay_millis"`
}

func (r RefreshConfig) PollInterval() time.Duration {
	if r.PollIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.PollIntervalSeconds) * time.Second
}

func (r RefreshConfig) RebookDelay() time.Duration {
	if r.RebookDelayMillis <= 0 {
		return time.Second
	}
	return time.Duration(r.RebookDelayMillis) * time.Millisecond
}

type SearchConfig struct {
	DebounceMillis int `yaml:"debounce_millis"`
}

func (s SearchConfig) Debounce() time.Duration {
	if s.DebounceMillis <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(s.DebounceMillis) * time.Millisecond
}

type DelayConfig struct {
	Reason      string `yaml:"reason"`
	OffsetHours int    `yaml:"offset_hours"`
}

func (d DelayConfig) DelayReason() string {
	if d.Reason == "" {
		return "Technical issues with aircraft"
	}
	return d.Reason
}

func (d DelayConfig) Offset() time.Duration {
	if d.OffsetHours <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(d.OffsetHours) * time.Hour
}

type MockAPIConfig struct {
	Address         string `yaml:"address"`
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

func (m MockAPIConfig) TokenTTL() time.Duration {
	if m.TokenTTLMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(m.TokenTTLMinutes) * time.Minute
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
