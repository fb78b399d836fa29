package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/platform/tui"
	"github.com/vovakirdan/tui-ladders/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ladders SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own hot-seat game with a board picker.
Results are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config, generating it if missing

Examples:
  ladders serve                           # Listen on :2323
  ladders serve --ssh :2222               # Listen on port 2222
  ladders serve --metrics :9090           # Also serve /metrics and /healthz
  ladders serve --players Ada,Bob         # Seat names for every game

Users can connect with:
  ssh localhost -p 2323`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: server.ssh_addr)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: server.host_key)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics HTTP address (default: server.metrics_addr, empty disables)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringSliceVar(&flagPlayers, "players", nil, "Player names for every game")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}
	if flagMetricsAddr != "" {
		cfg.Server.MetricsAddr = flagMetricsAddr
	}
	if len(flagPlayers) > 0 {
		cfg.Players = flagPlayers
	}

	logger, err := newLogger(cfg, "serve")
	if err != nil {
		return err
	}

	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}

	backs, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer backs.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := telemetry.NewCollector(reg)
	if err != nil {
		return err
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = cfg.Server.SSHAddr
	sshCfg.HostKeyPath = cfg.Server.HostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.Players = cfg.PlayerNames()
	sshCfg.Rules = rules
	sshCfg.Seed = flagSeed

	server, err := tui.NewSSHServer(sshCfg, tui.Services{
		Results:   backs.store,
		Saves:     backs.saves,
		Collector: collector,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	var metrics *http.Server
	if cfg.Server.MetricsAddr != "" {
		metrics = &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           telemetry.NewHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "address", metrics.Addr)
			if err := metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	fmt.Printf("Starting ladders SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe(ctx)

	if metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}
	return serveErr
}
