package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xegabriel/wg-easy-sentinel/internal/model"
)

// Store persists the connectivity ledger as a line-oriented text file.
// Records are `connected:<peer>:1` and `handshake:<peer>:<unixSeconds>`,
// one per line, order irrelevant.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the ledger from disk. A missing file is a cold start and
// returns an empty ledger, not an error.
func (s *Store) Load() (model.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewLedger(), nil
		}
		return model.Ledger{}, fmt.Errorf("read ledger %s: %w", s.path, err)
	}
	return Parse(string(data)), nil
}

// Save writes the ledger atomically: a temp file in the same directory is
// written, synced and renamed into place, so a crash mid-write never leaves
// a truncated ledger behind.
func (s *Store) Save(ledger model.Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "ledger-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.WriteString(Encode(ledger)); err != nil {
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp ledger: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		tmp = nil
		return fmt.Errorf("rename ledger into place: %w", err)
	}
	tmp = nil
	return nil
}

// Parse decodes ledger records. Malformed or unknown lines are skipped with
// a warning rather than failing the load.
func Parse(data string) model.Ledger {
	ledger := model.NewLedger()
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 3 || parts[1] == "" {
			slog.Warn("skipping malformed ledger line", "line", line)
			continue
		}
		switch parts[0] {
		case "connected":
			if parts[2] != "1" {
				slog.Warn("skipping malformed ledger line", "line", line)
				continue
			}
			ledger.Connected[parts[1]] = true
		case "handshake":
			ts, err := strconv.ParseInt(parts[2], 10, 64)
			if err != nil || ts < 0 {
				slog.Warn("skipping malformed ledger line", "line", line)
				continue
			}
			ledger.LastHandshake[parts[1]] = ts
		default:
			slog.Warn("skipping unknown ledger record kind", "kind", parts[0])
		}
	}
	return ledger
}

// Encode serializes the ledger in sorted order so saved files diff cleanly.
func Encode(ledger model.Ledger) string {
	lines := make([]string, 0, len(ledger.Connected)+len(ledger.LastHandshake))

	connected := make([]string, 0, len(ledger.Connected))
	for peer, ok := range ledger.Connected {
		if ok {
			connected = append(connected, peer)
		}
	}
	sort.Strings(connected)
	for _, peer := range connected {
		lines = append(lines, "connected:"+peer+":1")
	}

	peers := make([]string, 0, len(ledger.LastHandshake))
	for peer := range ledger.LastHandshake {
		peers = append(peers, peer)
	}
	sort.Strings(peers)
	for _, peer := range peers {
		lines = append(lines, fmt.Sprintf("handshake:%s:%d", peer, ledger.LastHandshake[peer]))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
