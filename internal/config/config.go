package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"order-relay/internal/domain"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gateway GatewayConfig `yaml:"gateway"`
	Admin   AdminConfig   `yaml:"admin"`
	Shift   ShiftConfig   `yaml:"shift"`
}

type ServerConfig struct {
	Port int `yaml:"port" env:"PORT"`
}

type GatewayConfig struct {
	BaseURL       string `yaml:"base_url" env:"GATEWAY_BASE_URL"`
	AccessToken   string `yaml:"access_token" env:"GATEWAY_ACCESS_TOKEN"`
	ChannelSecret string `yaml:"channel_secret" env:"GATEWAY_CHANNEL_SECRET"`
}

type AdminConfig struct {
	// ConversationID statically designates the admin conversation. It can
	// also be registered at runtime from within the conversation itself.
	ConversationID string `yaml:"conversation_id" env:"ADMIN_CONVERSATION_ID"`
}

type ShiftConfig struct {
	RolloverHour int `yaml:"rollover_hour" env:"SHIFT_ROLLOVER_HOUR"`
}

// Load reads the optional YAML config file, then applies environment
// variable overrides on top. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Port: 3000},
		Gateway: GatewayConfig{BaseURL: "https://api.line.me"},
		Shift:   ShiftConfig{RolloverHour: domain.DefaultRolloverHour},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Gateway.AccessToken == "" {
		return errors.New("gateway access token is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Shift.RolloverHour < 0 || c.Shift.RolloverHour > 23 {
		return fmt.Errorf("invalid rollover hour: %d", c.Shift.RolloverHour)
	}
	return nil
}
