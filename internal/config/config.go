package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/dkellner/blockmatch/pkg/core/strategy"
)

// RecurringBlock defines a block to materialize onto the calendar
type RecurringBlock struct {
	BlockID      string `yaml:"blockID" validate:"required"`
	RRule        string `yaml:"rrule" validate:"required"`
	StartTime    string `yaml:"startTime" validate:"required"`
	ContractType string `yaml:"contractType,omitempty" validate:"omitempty,oneof=solo1 solo2 team"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string           `yaml:"databaseURL" validate:"required"`
	DefaultStrategy string           `yaml:"defaultStrategy,omitempty"`
	ListenAddr      string           `yaml:"listenAddr,omitempty"`
	RecurringBlocks []RecurringBlock `yaml:"recurringBlocks,omitempty" validate:"dive"`
}

var validate *validator.Validate

var startTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from blockmatch_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the strategy name, and each
// recurring block's rrule syntax and start time format
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DefaultStrategy != "" {
		if _, err := strategy.PresetByName(cfg.DefaultStrategy); err != nil {
			return fmt.Errorf("invalid defaultStrategy: %w", err)
		}
	}

	for i, block := range cfg.RecurringBlocks {
		if _, err := rrule.StrToRRule(block.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringBlocks[%d]: %w", i, err)
		}
		if !startTimePattern.MatchString(block.StartTime) {
			return fmt.Errorf("invalid startTime in recurringBlocks[%d]: %q is not HH:MM", i, block.StartTime)
		}
	}

	return nil
}

// findConfigFile searches for blockmatch_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "blockmatch_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
