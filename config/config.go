package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/gigwage/api"
	"github.com/kilianp07/gigwage/core/metrics"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. GW_SERVER__ADDR or GW_DEFAULTS__GASPRICE.
const EnvPrefix = "GW_"

type Config struct {
	Server   api.Config     `json:"server"`
	Metrics  metrics.Config `json:"metrics"`
	MQTT     mqtt.Config    `json:"mqtt"`
	Defaults model.Inputs   `json:"defaults"`
	Logging  LoggingConfig  `json:"logging"`
}

// Load reads the YAML or JSON file at path, applies environment overrides
// and validates the result. An empty path loads from the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Config{Defaults: model.DefaultInputs()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
	if m, err := model.ParseMode(string(c.Defaults.Mode)); err == nil {
		c.Defaults.Mode = m
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if err := validateDefaults(c.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// validateDefaults checks the cost assumptions only; per-week figures are
// supplied by each request.
func validateDefaults(in model.Inputs) error {
	switch {
	case !in.Mode.Valid():
		return fmt.Errorf("unknown calculation mode %q", in.Mode)
	case in.MPG < 1:
		return fmt.Errorf("mpg must be at least 1")
	case in.GasPrice < 0 || in.IRSMileageRate < 0 || in.DepreciationRate < 0:
		return fmt.Errorf("rates must not be negative")
	case in.TaxRate < 0 || in.TaxRate > 100:
		return fmt.Errorf("tax rate must be between 0-100")
	}
	return nil
}
