package sentinel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
	"github.com/xegabriel/wg-easy-sentinel/internal/notify"
	"github.com/xegabriel/wg-easy-sentinel/internal/reconcile"
	"github.com/xegabriel/wg-easy-sentinel/internal/source"
)

// Store is the slice of the ledger store the cycle needs.
type Store interface {
	Load() (model.Ledger, error)
	Save(model.Ledger) error
}

// Labeler resolves a peer key to a display name.
type Labeler interface {
	LabelFor(key string) string
}

// Sentinel owns one reconciliation cycle: load the ledger, poll the
// gateway, diff, notify transitions, persist the replacement ledger.
type Sentinel struct {
	Source  source.Source
	Store   Store
	Names   Labeler
	Notify  notify.Notifier
	Timeout time.Duration
	Label   string
	DryRun  bool

	Now func() time.Time // nil means time.Now
}

// Run executes a single cycle. Setup failures (ledger unreadable, backend
// unavailable) abort before any state mutation. Notification and save
// failures are logged and do not fail the cycle.
func (s *Sentinel) Run(ctx context.Context) error {
	prev, err := s.Store.Load()
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	snapshot, err := s.Source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("poll gateway: %w", err)
	}

	events, next := reconcile.Reconcile(snapshot, prev, s.now(), s.Timeout)
	slog.Info("reconciled",
		"peers", len(snapshot),
		"connected", len(next.Connected),
		"events", len(events))

	for _, ev := range events {
		title, body := s.message(ev)
		if s.DryRun {
			slog.Info("dry run, skipping notification", "title", title, "body", body)
			continue
		}
		if err := s.Notify.Send(ctx, title, body); err != nil {
			// Best-effort: a dropped notification must never block the save.
			slog.Error("notification dropped", "peer", ev.Peer, "err", err)
		}
	}

	if s.DryRun {
		slog.Info("dry run, ledger not persisted")
		return nil
	}
	if err := s.Store.Save(next); err != nil {
		slog.Error("ledger save failed, state will be stale until the next successful run", "err", err)
	}
	return nil
}

func (s *Sentinel) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
