// Package config loads settings from defaults, config.yaml, .env/environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the merged runtime configuration, see LoadConfig for precedence.
type Config struct {
	Charts   ChartsConfig   `mapstructure:"charts"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type ChartsConfig struct {
	OutputDir string  `mapstructure:"output_dir"`
	Width     float64 `mapstructure:"width"`  // inches
	Height    float64 `mapstructure:"height"` // inches
	DPI       float64 `mapstructure:"dpi"`
}

type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

// TelegramConfig is only needed by the publish command.
type TelegramConfig struct {
	BotToken       string `mapstructure:"bot_token"`
	ChatID         int64  `mapstructure:"chat_id"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
	MaxRetries     int    `mapstructure:"max_retries"`
}

// LoadConfig merges, lowest to highest priority:
// 1. defaults
// 2. config.yaml in the working directory
// 3. .env file and environment variables
// 4. flags that were set explicitly
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Charts.OutputDir = strings.TrimSpace(cfg.Charts.OutputDir)
	cfg.Telegram.BotToken = strings.TrimSpace(cfg.Telegram.BotToken)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("charts.output_dir", "GOJINN_CHARTS_OUTPUT_DIR")
	v.BindEnv("charts.width", "GOJINN_CHARTS_WIDTH")
	v.BindEnv("charts.height", "GOJINN_CHARTS_HEIGHT")
	v.BindEnv("charts.dpi", "GOJINN_CHARTS_DPI")

	v.BindEnv("log.dir", "GOJINN_LOG_DIR")
	v.BindEnv("log.level", "GOJINN_LOG_LEVEL")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.request_timeout", "TELEGRAM_REQUEST_TIMEOUT")
	v.BindEnv("telegram.max_retries", "TELEGRAM_MAX_RETRIES")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("charts.output_dir", "assets")
	v.SetDefault("charts.width", 10.0)
	v.SetDefault("charts.height", 6.0)
	v.SetDefault("charts.dpi", 100.0)

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.level", "info")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.request_timeout", 30)
	v.SetDefault("telegram.max_retries", 3)
}

// RegisterFlags adds one flag per config key. Unset flags do not override
// env or file values.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("charts.output_dir", "assets", "Directory the charts are written to, must exist (env: GOJINN_CHARTS_OUTPUT_DIR)")
	flags.Float64("charts.width", 10, "Figure width in inches (env: GOJINN_CHARTS_WIDTH)")
	flags.Float64("charts.height", 6, "Figure height in inches (env: GOJINN_CHARTS_HEIGHT)")
	flags.Float64("charts.dpi", 100, "Image resolution in dots per inch (env: GOJINN_CHARTS_DPI)")

	flags.String("log.dir", "logs", "Directory for app.log (env: GOJINN_LOG_DIR)")
	flags.String("log.level", "info", "Log file level: debug, info, warn, error (env: GOJINN_LOG_LEVEL)")

	flags.String("telegram.bot_token", "", "Telegram bot token for publish (env: TELEGRAM_BOT_TOKEN)")
	flags.Int64("telegram.chat_id", 0, "Telegram chat ID for publish (env: TELEGRAM_CHAT_ID)")
	flags.Int("telegram.request_timeout", 30, "Telegram request timeout in seconds (env: TELEGRAM_REQUEST_TIMEOUT)")
	flags.Int("telegram.max_retries", 3, "Max retries per upload (env: TELEGRAM_MAX_RETRIES)")
}

func validateConfig(cfg *Config) error {
	if cfg.Charts.OutputDir == "" {
		return fmt.Errorf("charts.output_dir must not be empty")
	}
	if cfg.Charts.Width <= 0 || cfg.Charts.Height <= 0 {
		return fmt.Errorf("charts.width and charts.height must be positive, got %gx%g", cfg.Charts.Width, cfg.Charts.Height)
	}
	if cfg.Charts.DPI <= 0 {
		return fmt.Errorf("charts.dpi must be positive, got %g", cfg.Charts.DPI)
	}
	if cfg.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}
	return nil
}

// Validate checks the settings the publish command depends on.
func (c TelegramConfig) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required to publish charts")
	}
	if c.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required to publish charts")
	}
	return nil
}
