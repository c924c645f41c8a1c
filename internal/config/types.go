// Package config manages application configuration from environment variables,
// config files, and default values.
package config

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration indicates a fatal configuration problem at startup.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Image     ImageConfig     `mapstructure:"image"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// TelegramConfig holds the bot credential and identity settings.
// ChannelID is optional; when zero, channel membership gating is skipped.
// Channel IDs are negative for supergroups/channels, so no sign constraint.
type TelegramConfig struct {
	Token     string `mapstructure:"token"      validate:"required"`
	AdminID   int64  `mapstructure:"admin_id"   validate:"required,gt=0"`
	ChannelID int64  `mapstructure:"channel_id"`
}

// DatabaseConfig holds the persistent store connection settings.
// Path is the SQLite connection string; the process refuses to start
// without it.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ImageConfig is the transform policy applied to uploaded photos and the
// transient-file housekeeping settings.
type ImageConfig struct {
	MaxWidth         int           `mapstructure:"max_width"         validate:"required,gt=0"`
	MaxHeight        int           `mapstructure:"max_height"        validate:"required,gt=0"`
	Quality          int           `mapstructure:"quality"           validate:"required,min=1,max=100"`
	Format           string        `mapstructure:"format"            validate:"required,oneof=jpeg png"`
	PreserveMetadata bool          `mapstructure:"preserve_metadata"`
	TempDir          string        `mapstructure:"temp_dir"          validate:"required"`
	MaxConcurrent    int64         `mapstructure:"max_concurrent"    validate:"required,gt=0"`
	SweepMaxAge      time.Duration `mapstructure:"sweep_max_age"     validate:"required,min=1m"`
}

// TaskConfig controls a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their cron configuration.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds every user-facing text the bot sends, so deployments
// can localize or rebrand without code changes.
type MessagesConfig struct {
	Welcome               string `mapstructure:"welcome"                 validate:"required"`
	UnderReview           string `mapstructure:"under_review"            validate:"required"`
	JoinChannelFmt        string `mapstructure:"join_channel"            validate:"required"`
	MembershipCheckFailed string `mapstructure:"membership_check_failed" validate:"required"`
	AccessRequested       string `mapstructure:"access_requested"        validate:"required"`
	AccessRequestFmt      string `mapstructure:"access_request"          validate:"required"`
	NotAuthorized         string `mapstructure:"not_authorized"          validate:"required"`
	ApproveUsage          string `mapstructure:"approve_usage"           validate:"required"`
	ApprovedNotice        string `mapstructure:"approved_notice"         validate:"required"`
	ApproveSuccessFmt     string `mapstructure:"approve_success"         validate:"required"`
	BroadcastUsage        string `mapstructure:"broadcast_usage"         validate:"required"`
	BroadcastResultFmt    string `mapstructure:"broadcast_result"        validate:"required"`
	NotApproved           string `mapstructure:"not_approved"            validate:"required"`
	ProcessingFailed      string `mapstructure:"processing_failed"       validate:"required"`
	ProcessedCaption      string `mapstructure:"processed_caption"       validate:"required"`
	GeneralError          string `mapstructure:"general_error"           validate:"required"`
	Help                  string `mapstructure:"help"                    validate:"required"`
}

// Validate checks the complete configuration against the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
