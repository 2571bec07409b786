package source

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// ErrUnavailable means the handshake backend could not be queried at all.
// Distinct from an empty snapshot, which is a valid result.
var ErrUnavailable = errors.New("handshake backend unavailable")

// Source lists peers with their last-handshake timestamps.
type Source interface {
	Snapshot(ctx context.Context) ([]model.HandshakeRecord, error)
}

// ParseLatestHandshakes parses `wg show all latest-handshakes` output: one
// `<interface> <peer> <unixSeconds>` line per peer. Lines that do not match
// are discarded with a warning so the reconciler only ever sees well-formed
// records. A non-empty iface keeps only that interface's peers.
func ParseLatestHandshakes(out, iface string) []model.HandshakeRecord {
	records := []model.HandshakeRecord{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			slog.Warn("discarding malformed handshake line", "line", line)
			continue
		}
		if iface != "" && fields[0] != iface {
			continue
		}
		ts, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil || ts < 0 {
			slog.Warn("discarding malformed handshake line", "line", line)
			continue
		}
		records = append(records, model.HandshakeRecord{Peer: fields[1], LastHandshake: ts})
	}
	return records
}
