package app

import (
	"fmt"

	"github.com/haguru/folio/config"

	structValidator "github.com/go-playground/validator/v10"
)

// LoadConfig reads the YAML config, applies the environment and validates
// the result.
func LoadConfig(configPath, envPath string) (*config.ServiceConfig, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := config.LoadEnv(cfg, envPath); err != nil {
		return nil, err
	}

	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return cfg, nil
}
