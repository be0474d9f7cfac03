// Package config provides configuration loading, validation, and management
// for MindfulBot. It reads a YAML file, applies defaults and MINDFUL_*
// environment overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
)

// ErrValidation is returned when the loaded configuration is invalid.
var ErrValidation = errors.New("validation error")

// Config defines the application configuration for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls the slog handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig selects the message store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite memory"`
	Path   string `mapstructure:"path"   validate:"required_if=Driver sqlite"`
}

// TelegramConfig configures the Telegram transport.
type TelegramConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Token        string        `mapstructure:"token"         validate:"required_if=Enabled true"`
	ReplyTimeout time.Duration `mapstructure:"reply_timeout" validate:"min=1s"`

	// BotInfo is filled at runtime from getMe.
	BotInfo *models.User `mapstructure:"-" validate:"-"`
}

// HTTPConfig configures the JSON API server.
type HTTPConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Addr            string        `mapstructure:"addr"             validate:"required_if=Enabled true"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s"`
	ReplyTimeout    time.Duration `mapstructure:"reply_timeout"    validate:"min=1s"`
}

// AnalysisConfig configures classification and the reply pipeline.
type AnalysisConfig struct {
	// TablesPath points to a YAML keyword table file. Empty uses the built-in tables.
	TablesPath      string        `mapstructure:"tables_path"`
	MinUserMessages int           `mapstructure:"min_user_messages" validate:"min=1"`
	ReplyDelay      time.Duration `mapstructure:"reply_delay"       validate:"min=0s"`
	// Seed fixes the reply randomness when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// SchedulerConfig holds the cron tasks, keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task. Schedules use six-field cron syntax.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds user-facing texts and input limits.
type MessagesConfig struct {
	Welcome        string `mapstructure:"welcome"          validate:"required"`
	Help           string `mapstructure:"help"             validate:"required"`
	GeneralError   string `mapstructure:"general_error"    validate:"required"`
	EmptyMessage   string `mapstructure:"empty_message"    validate:"required"`
	MessageTooLong string `mapstructure:"message_too_long" validate:"required"`
	MaxLength      int    `mapstructure:"max_length"       validate:"min=1"`
}

var validate = validator.New()

// Validate checks field constraints and cross-section rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !c.Telegram.Enabled && !c.HTTP.Enabled {
		return fmt.Errorf("%w: at least one of telegram or http must be enabled", ErrValidation)
	}
	return nil
}
