package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Charts.OutputDir != "assets" || cfg.Charts.DPI != 100 || cfg.Charts.Width != 10 || cfg.Charts.Height != 6 {
		t.Fatalf("unexpected chart defaults: %+v", cfg.Charts)
	}
	if cfg.Log.Dir != "logs" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Telegram.MaxRetries != 3 || cfg.Telegram.RequestTimeout != 30 {
		t.Fatalf("unexpected telegram defaults: %+v", cfg.Telegram)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "charts:\n  output_dir: from-file\n  dpi: 72\nlog:\n  level: warn\n"
	if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("GOJINN_CHARTS_DPI", "150")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")

	cfg, err := LoadConfig(newFlags(t, "--charts.output_dir=from-flag"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Charts.OutputDir != "from-flag" {
		t.Fatalf("flag should win, got %q", cfg.Charts.OutputDir)
	}
	if cfg.Charts.DPI != 150 {
		t.Fatalf("env should beat file, got %v", cfg.Charts.DPI)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("file should beat default, got %q", cfg.Log.Level)
	}
	if cfg.Telegram.ChatID != -1001234 {
		t.Fatalf("unexpected chat id %d", cfg.Telegram.ChatID)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	// registered so t.Setenv restores the variable godotenv sets
	t.Setenv("GOJINN_LOG_DIR", "")
	os.Unsetenv("GOJINN_LOG_DIR")

	if err := os.WriteFile(".env", []byte("GOJINN_LOG_DIR=var/log\n"), 0644); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}
	cfg, err := LoadConfig(newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Log.Dir != "var/log" {
		t.Fatalf("expected log dir from .env, got %q", cfg.Log.Dir)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := LoadConfig(newFlags(t, "--charts.dpi=0")); err == nil {
		t.Fatalf("expected error for zero dpi")
	}
	if _, err := LoadConfig(newFlags(t, "--charts.output_dir=  ")); err == nil {
		t.Fatalf("expected error for blank output dir")
	}
	if _, err := LoadConfig(newFlags(t, "--charts.width=-1")); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestTelegramConfig_Validate(t *testing.T) {
	if err := (TelegramConfig{}).Validate(); err == nil {
		t.Fatalf("expected error without token")
	}
	if err := (TelegramConfig{BotToken: "t"}).Validate(); err == nil {
		t.Fatalf("expected error without chat id")
	}
	if err := (TelegramConfig{BotToken: "t", ChatID: 1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore chdir failed: %v", err)
		}
	})
}
