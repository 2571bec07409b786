package notify

import (
	"context"
	"errors"
	"log/slog"
)

// ErrDelivery means a notification could not be delivered after retries.
// Delivery is best-effort: callers log it and continue.
var ErrDelivery = errors.New("notification delivery failed")

// Notifier delivers a titled message to the configured push channel.
type Notifier interface {
	Send(ctx context.Context, title, body string) error
}

// Log is a Notifier that only writes to the log. Used when no push
// credentials are configured and for dry runs.
type Log struct{}

func (Log) Send(_ context.Context, title, body string) error {
	slog.Info("notification", "title", title, "body", body)
	return nil
}
