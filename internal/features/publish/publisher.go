// Package publish uploads rendered charts to a Telegram chat as photos.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	storage "gojinn-bench/internal/infra/fs"
	logging "gojinn-bench/internal/infra/log"
	"gojinn-bench/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI the publisher needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Chart is one image to upload with its caption.
type Chart struct {
	Path    string
	Caption string
}

// Publisher sends charts to one chat. Every upload goes through the rate
// limiter, the circuit breaker and retry.
type Publisher struct {
	sender         Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

type Option func(*Publisher)

func WithRetry(opts retry.Options) Option {
	return func(p *Publisher) {
		p.retry = opts
	}
}

func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(p *Publisher) {
		p.rateLimiter = rate.NewLimiter(limit, burst)
	}
}

func New(sender Sender, chatID int64, opts ...Option) *Publisher {
	p := &Publisher{
		sender: sender,
		chatID: chatID,
		// Telegram allows about one message per second in a chat.
		rateLimiter: rate.NewLimiter(rate.Limit(1), 1),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramUpload",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
		retry: retry.Options{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish uploads charts in order. All files are checked before the first
// upload, so a missing chart sends nothing.
func (p *Publisher) Publish(ctx context.Context, charts []Chart) error {
	for _, c := range charts {
		if _, err := storage.CheckNonEmptyFile(c.Path); err != nil {
			return fmt.Errorf("chart not ready: %w", err)
		}
	}

	for _, c := range charts {
		start := time.Now()
		if err := p.send(ctx, c); err != nil {
			logging.LogError("Failed to publish chart", zap.String("path", c.Path), zap.Error(err))
			return fmt.Errorf("failed to publish %s: %w", c.Path, err)
		}
		logging.LogSuccess("Chart published",
			zap.String("path", c.Path),
			zap.Int64("chatID", p.chatID),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	}
	return nil
}

func (p *Publisher) send(ctx context.Context, c Chart) error {
	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(c.Path))
	photo.Caption = c.Caption

	return retry.Do(ctx, p.retry, func() error {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.sender.Send(photo)
		})
		if err != nil {
			logging.LogWarn("Telegram upload attempt failed", zap.String("path", c.Path), zap.Error(err))
		}
		return classify(err)
	})
}

// classify turns Telegram API errors into retry.StatusError so that
// rate limits and server errors are retried.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return statusError(*apiErr)
	}
	var apiErrValue tgbotapi.Error
	if errors.As(err, &apiErrValue) {
		return statusError(apiErrValue)
	}
	return err
}

func statusError(e tgbotapi.Error) *retry.StatusError {
	return &retry.StatusError{
		Code:       e.Code,
		Message:    e.Message,
		RetryAfter: time.Duration(e.RetryAfter) * time.Second,
	}
}
