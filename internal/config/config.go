package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargehub/libs/config"
)

// HTTPConfig holds the HTTP listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"CHARGEHUB_HTTP_PORT"`
}

// TelemetryConfig tunes the simulated telemetry loop.
type TelemetryConfig struct {
	TickSeconds   int     `yaml:"tickSeconds" env:"CHARGEHUB_TICK_SECONDS"`
	MinPowerKw    int     `yaml:"minPowerKw" env:"CHARGEHUB_MIN_POWER_KW"`
	MaxPowerKw    int     `yaml:"maxPowerKw" env:"CHARGEHUB_MAX_POWER_KW"`
	PowerJitterKw int     `yaml:"powerJitterKw" env:"CHARGEHUB_POWER_JITTER_KW"`
	TariffPerKWh  float64 `yaml:"tariffPerKwh" env:"CHARGEHUB_TARIFF_PER_KWH"`
}

// SessionConfig supplies defaults applied to new sessions.
type SessionConfig struct {
	Currency    string `yaml:"currency" env:"CHARGEHUB_CURRENCY"`
	SeedPowerKw int    `yaml:"seedPowerKw" env:"CHARGEHUB_SEED_POWER_KW"`
	TargetSoc   int    `yaml:"targetSoc" env:"CHARGEHUB_TARGET_SOC"`
}

// Config defines sessions manager configuration.
type Config struct {
	HTTP      HTTPConfig        `yaml:"http"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`
	Session   SessionConfig     `yaml:"session"`
	SeedFile  string            `yaml:"seedFile" env:"CHARGEHUB_SEED_FILE"`
	Chargers  map[string]string `yaml:"chargers" env:"-"`
}

// Load reads configuration via the shared helper and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{Port: "8085"},
		Telemetry: TelemetryConfig{
			TickSeconds:   5,
			MinPowerKw:    35,
			MaxPowerKw:    95,
			PowerJitterKw: 5,
			TariffPerKWh:  1200,
		},
		Session: SessionConfig{
			Currency:    "UGX",
			SeedPowerKw: 60,
			TargetSoc:   85,
		},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Telemetry.TickSeconds <= 0 {
		return nil, errors.New("config: telemetry tick must be positive")
	}
	if cfg.Telemetry.MinPowerKw <= 0 || cfg.Telemetry.MaxPowerKw < cfg.Telemetry.MinPowerKw {
		return nil, errors.New("config: telemetry power bounds invalid")
	}
	if cfg.Telemetry.PowerJitterKw < 0 {
		return nil, errors.New("config: telemetry power jitter must not be negative")
	}
	if cfg.Telemetry.TariffPerKWh < 0 {
		return nil, errors.New("config: tariff must not be negative")
	}
	if cfg.Session.TargetSoc < 0 || cfg.Session.TargetSoc > 100 {
		return nil, errors.New("config: target soc must be within 0..100")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TickInterval returns the telemetry cadence as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Telemetry.TickSeconds) * time.Second
}
