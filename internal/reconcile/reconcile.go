package reconcile

import (
	"sort"
	"time"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// Reconcile diffs one handshake snapshot against the previously persisted
// ledger and returns the transition events plus the replacement ledger.
//
// A peer counts as connected when its handshake is strictly younger than
// timeout; an age exactly equal to timeout classifies as disconnected.
// Classification depends only on the snapshot, now and timeout — the
// previous ledger decides which transitions are new, never whether a peer
// is connected. Calling Reconcile again with the same snapshot and the
// returned ledger therefore emits no events.
//
// Connected events come first in snapshot order, then Disconnected events
// in sorted peer order. Duplicate peers within one snapshot are not
// expected; when present, the last record wins.
func Reconcile(snapshot []model.HandshakeRecord, prev model.Ledger, now time.Time, timeout time.Duration) ([]model.Event, model.Ledger) {
	next := model.NewLedger()
	nowSec := now.Unix()
	threshold := int64(timeout / time.Second)

	order := make([]string, 0, len(snapshot))
	for _, rec := range snapshot {
		if _, seen := next.LastHandshake[rec.Peer]; !seen {
			order = append(order, rec.Peer)
		}
		next.LastHandshake[rec.Peer] = rec.LastHandshake
		if nowSec-rec.LastHandshake < threshold {
			next.Connected[rec.Peer] = true
		} else {
			delete(next.Connected, rec.Peer)
		}
	}

	events := []model.Event{}
	for _, peer := range order {
		if next.Connected[peer] && !prev.Connected[peer] {
			events = append(events, model.Event{
				Kind:           model.EventConnected,
				Peer:           peer,
				ElapsedSeconds: nowSec - next.LastHandshake[peer],
			})
		}
	}

	gone := make([]string, 0)
	for peer := range prev.Connected {
		if prev.Connected[peer] && !next.Connected[peer] {
			gone = append(gone, peer)
		}
	}
	sort.Strings(gone)
	for _, peer := range gone {
		// A peer with no recorded handshake falls back to elapsed = now.
		events = append(events, model.Event{
			Kind:           model.EventDisconnected,
			Peer:           peer,
			ElapsedSeconds: nowSec - prev.LastHandshake[peer],
		})
	}

	return events, next
}
