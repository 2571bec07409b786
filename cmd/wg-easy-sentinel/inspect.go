package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/xegabriel/wg-easy-sentinel/internal/config"
	"github.com/xegabriel/wg-easy-sentinel/internal/model"
	"github.com/xegabriel/wg-easy-sentinel/internal/names"
	"github.com/xegabriel/wg-easy-sentinel/internal/sentinel"
	"github.com/xegabriel/wg-easy-sentinel/internal/store"
)

// Read-only inspection commands. Neither takes the run lock: status reads
// the ledger (atomic rename keeps it consistent) and peers only polls.

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted ledger with resolved names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ledger, err := store.New(cfg.LedgerPath()).Load()
			if err != nil {
				return err
			}
			printPeers(cmd.OutOrStdout(), ledgerRows(ledger, names.Load(cfg.NamesPath), time.Now()))
			return nil
		},
	}
}

func peersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peers",
		Short: "Poll the gateway and show live peers with their classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			snapshot, err := newSource(cfg).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			printPeers(cmd.OutOrStdout(), snapshotRows(snapshot, names.Load(cfg.NamesPath), time.Now(), cfg.Timeout))
			return nil
		},
	}
}

func testNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification through the configured channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			title := "🟢 Test notification"
			if cfg.Label != "" {
				title += " [" + cfg.Label + "]"
			}
			if err := newNotifier(cfg).Send(cmd.Context(), title, "wg-easy-sentinel can reach your notification channel."); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successMsg("test notification delivered"))
			return nil
		},
	}
}

type peerRow struct {
	name      string
	connected bool
	lastSeen  string
}

func ledgerRows(ledger model.Ledger, resolver *names.Resolver, now time.Time) []peerRow {
	keys := map[string]bool{}
	for peer := range ledger.Connected {
		keys[peer] = true
	}
	for peer := range ledger.LastHandshake {
		keys[peer] = true
	}

	rows := make([]peerRow, 0, len(keys))
	for peer := range keys {
		row := peerRow{name: resolver.LabelFor(peer), connected: ledger.Connected[peer], lastSeen: "never"}
		if ts, ok := ledger.LastHandshake[peer]; ok && ts > 0 {
			row.lastSeen = sentinel.FormatSeconds(now.Unix()-ts) + " ago"
		}
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

func snapshotRows(snapshot []model.HandshakeRecord, resolver *names.Resolver, now time.Time, timeout time.Duration) []peerRow {
	rows := make([]peerRow, 0, len(snapshot))
	for _, rec := range snapshot {
		row := peerRow{name: resolver.LabelFor(rec.Peer), lastSeen: "never"}
		if rec.LastHandshake > 0 {
			elapsed := now.Unix() - rec.LastHandshake
			row.connected = elapsed < int64(timeout/time.Second)
			row.lastSeen = sentinel.FormatSeconds(elapsed) + " ago"
		}
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

func sortRows(rows []peerRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
}

func printPeers(w io.Writer, rows []peerRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedText("no peers"))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s %s %s\n", marker(row.connected), row.name, mutedText("("+row.lastSeen+")"))
	}
}
