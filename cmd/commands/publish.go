package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gojinn-bench/internal/features/benchmarks"
	"gojinn-bench/internal/features/publish"
	logging "gojinn-bench/internal/infra/log"
	"gojinn-bench/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send the rendered charts to a Telegram chat",
	Long:  `Send every chart from the output directory to telegram.chat_id as a photo, captioned with its title.`,
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

// runPublish uploads what is already on disk, charts are not re-rendered.
func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Telegram.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: time.Duration(cfg.Telegram.RequestTimeout) * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		logging.LogError("Failed to authorize Telegram bot", zap.Error(err))
		return fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	logging.LogSuccess("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	var items []publish.Chart
	for _, d := range benchmarks.Datasets() {
		items = append(items, publish.Chart{
			Path:    benchmarks.ChartPath(cfg.Charts.OutputDir, d),
			Caption: d.Title,
		})
	}

	p := publish.New(bot, cfg.Telegram.ChatID, publish.WithRetry(retry.Options{
		MaxRetries: cfg.Telegram.MaxRetries,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   30 * time.Second,
	}))
	if err := p.Publish(ctx, items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "📤 Published %d charts to chat %d\n", len(items), cfg.Telegram.ChatID)
	return nil
}
