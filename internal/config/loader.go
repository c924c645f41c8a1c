package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. config.yaml file
// 3. BOT_* environment variables
func Load() (*Config, error) {
	// Set defaults first
	setDefaults()

	// Create initial config with defaults
	cfg := &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Image: ImageConfig{
			MaxWidth:      DefaultImageMaxWidth,
			MaxHeight:     DefaultImageMaxHeight,
			Quality:       DefaultImageQuality,
			Format:        DefaultImageFormat,
			TempDir:       DefaultImageTempDir,
			MaxConcurrent: DefaultImageMaxConcurrent,
			SweepMaxAge:   DefaultImageSweepMaxAge,
		},
		Scheduler: SchedulerConfig{
			Tasks: DefaultSchedulerTasks,
		},
		Messages: DefaultMessages,
	}

	// Try to load config file (optional)
	if err := loadConfig(); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	// Unmarshal config file over defaults
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	// Validate the complete config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// loadConfig initializes and loads the configuration using viper
func loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Setup environment variables
	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Required values have no default; bind them explicitly so they are
	// visible to Unmarshal when set only through the environment.
	for _, key := range []string{
		"telegram.token",
		"telegram.admin_id",
		"telegram.channel_id",
		"database.path",
	} {
		if err := viper.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %v", key, err)
		}
	}

	// Allow missing config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %v", err)
		}
		// Config file not found is okay, we'll use defaults
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)

	// Image policy defaults
	viper.SetDefault("image.max_width", DefaultImageMaxWidth)
	viper.SetDefault("image.max_height", DefaultImageMaxHeight)
	viper.SetDefault("image.quality", DefaultImageQuality)
	viper.SetDefault("image.format", DefaultImageFormat)
	viper.SetDefault("image.preserve_metadata", false)
	viper.SetDefault("image.temp_dir", DefaultImageTempDir)
	viper.SetDefault("image.max_concurrent", DefaultImageMaxConcurrent)
	viper.SetDefault("image.sweep_max_age", DefaultImageSweepMaxAge)

	// Scheduler defaults
	viper.SetDefault("scheduler.tasks", DefaultSchedulerTasks)

	// Messages defaults
	viper.SetDefault("messages.welcome", DefaultMessages.Welcome)
	viper.SetDefault("messages.under_review", DefaultMessages.UnderReview)
	viper.SetDefault("messages.join_channel", DefaultMessages.JoinChannelFmt)
	viper.SetDefault("messages.membership_check_failed", DefaultMessages.MembershipCheckFailed)
	viper.SetDefault("messages.access_requested", DefaultMessages.AccessRequested)
	viper.SetDefault("messages.access_request", DefaultMessages.AccessRequestFmt)
	viper.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
	viper.SetDefault("messages.approve_usage", DefaultMessages.ApproveUsage)
	viper.SetDefault("messages.approved_notice", DefaultMessages.ApprovedNotice)
	viper.SetDefault("messages.approve_success", DefaultMessages.ApproveSuccessFmt)
	viper.SetDefault("messages.broadcast_usage", DefaultMessages.BroadcastUsage)
	viper.SetDefault("messages.broadcast_result", DefaultMessages.BroadcastResultFmt)
	viper.SetDefault("messages.not_approved", DefaultMessages.NotApproved)
	viper.SetDefault("messages.processing_failed", DefaultMessages.ProcessingFailed)
	viper.SetDefault("messages.processed_caption", DefaultMessages.ProcessedCaption)
	viper.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	viper.SetDefault("messages.help", DefaultMessages.Help)
}
