package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/twitchy/internal/httpapi"
	"github.com/vovakirdan/twitchy/internal/logging"
	"github.com/vovakirdan/twitchy/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the twitchy SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session and settings. Scores and
achievements are stored per-server (all users share the same leaderboard).
With --http the read-only leaderboard API and /metrics are served too.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at <data-dir>/host_key

Examples:
  twitchy serve                        # Listen on localhost:2222
  twitchy serve --ssh :2222            # Listen on all interfaces
  twitchy serve --http :8080           # Also serve the HTTP API
  twitchy serve --backend sqlite       # Keep scores in SQLite

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default TWITCHY_SSH_ADDR or localhost:2222)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port, empty = disabled)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	if cmd.Flags().Changed("ssh") {
		cfg.SSHAddr = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTPAddr = flagHTTPAddr
	}

	logger := logging.New(os.Stderr, "twitchy", cfg.LogLevel)
	data, err := openGameData(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer data.Close()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = cfg.SSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = cfg.FPS

	server, err := tui.NewSSHServer(sshCfg, cfg.DataDir, data.profiles, data.ledger, data.achievements,
		logger.WithPrefix("twitchy-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if cfg.HTTPAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		router := httpapi.NewRouter(httpapi.NewHandler(data.ledger, data.achievements, data.profiles))
		g.Go(func() error {
			return httpapi.Serve(ctx, cfg.HTTPAddr, router, logger.WithPrefix("twitchy-http"))
		})
	}

	fmt.Printf("Starting twitchy SSH server on %s\n", cfg.SSHAddr)
	if cfg.HTTPAddr != "" {
		fmt.Printf("HTTP API on %s\n", cfg.HTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
