package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	pushoverEndpoint = "https://api.pushover.net/1/messages.json"

	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// Pushover delivers notifications through the Pushover message API.
type Pushover struct {
	token    string
	user     string
	endpoint string
	delay    time.Duration
	http     *http.Client
}

func NewPushover(token, user string) *Pushover {
	return &Pushover{
		token:    token,
		user:     user,
		endpoint: pushoverEndpoint,
		delay:    retryDelay,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts the message, retrying transient failures a bounded number of
// times with a fixed delay. A 4xx response aborts immediately: bad
// credentials do not fix themselves.
func (p *Pushover) Send(ctx context.Context, title, body string) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrDelivery, ctx.Err())
			case <-time.After(p.delay):
			}
		}

		err := p.post(ctx, title, body)
		if err == nil {
			return nil
		}
		var status statusError
		if errors.As(err, &status) && status.code >= 400 && status.code < 500 {
			return fmt.Errorf("%w: %v", ErrDelivery, err)
		}
		lastErr = err
		slog.Warn("notification attempt failed", "attempt", attempt, "err", err)
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrDelivery, maxAttempts, lastErr)
}

func (p *Pushover) post(ctx context.Context, title, body string) error {
	form := url.Values{}
	form.Set("token", p.token)
	form.Set("user", p.user)
	form.Set("title", title)
	form.Set("message", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return statusError{code: res.StatusCode, body: strings.TrimSpace(string(b))}
	}
	return nil
}

type statusError struct {
	code int
	body string
}

func (e statusError) Error() string {
	if e.body != "" {
		return fmt.Sprintf("pushover returned %d: %s", e.code, e.body)
	}
	return fmt.Sprintf("pushover returned %d", e.code)
}
