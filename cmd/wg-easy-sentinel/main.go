package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xegabriel/wg-easy-sentinel/internal/config"
	"github.com/xegabriel/wg-easy-sentinel/internal/execx"
	"github.com/xegabriel/wg-easy-sentinel/internal/logging"
	"github.com/xegabriel/wg-easy-sentinel/internal/names"
	"github.com/xegabriel/wg-easy-sentinel/internal/notify"
	"github.com/xegabriel/wg-easy-sentinel/internal/runlock"
	"github.com/xegabriel/wg-easy-sentinel/internal/sentinel"
	"github.com/xegabriel/wg-easy-sentinel/internal/source"
	"github.com/xegabriel/wg-easy-sentinel/internal/store"
)

func main() {
	if err := logging.Configure(logging.LevelInfo); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "wg-easy-sentinel",
		Short: "Connect/disconnect notifications for a wg-easy WireGuard gateway",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelInfo
			if debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.AddCommand(runCmd(), statusCmd(), peersCmd(), testNotifyCmd())
	return cmd
}

func runCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one poll-diff-notify-persist cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				if errors.Is(err, runlock.ErrHeld) {
					return fmt.Errorf("another run is already in progress")
				}
				return fmt.Errorf("acquire run lock: %w", err)
			}
			defer lock.Release()

			s := buildSentinel(cfg)
			s.DryRun = dryRun
			return s.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile and log, skip notifications and persistence")
	return cmd
}

func buildSentinel(cfg config.Config) *sentinel.Sentinel {
	return &sentinel.Sentinel{
		Source:  newSource(cfg),
		Store:   store.New(cfg.LedgerPath()),
		Names:   names.Load(cfg.NamesPath),
		Notify:  newNotifier(cfg),
		Timeout: cfg.Timeout,
		Label:   cfg.Label,
	}
}

func newSource(cfg config.Config) source.Source {
	if cfg.Backend == config.BackendKernel {
		return source.NewKernel(cfg.Interface)
	}
	return source.NewDocker(cfg.Container, cfg.Interface, execx.OSRunner{})
}

func newNotifier(cfg config.Config) notify.Notifier {
	if cfg.PushoverToken == "" {
		slog.Debug("no pushover credentials, notifications go to the log only")
		return notify.Log{}
	}
	return notify.NewPushover(cfg.PushoverToken, cfg.PushoverUser)
}
