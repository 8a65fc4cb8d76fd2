package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/config"
	"github.com/jackzampolin/langextract/internal/server"
)

var (
	serveHost   string
	servePort   string
	waitBackend time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LangExtract web form",
	Long: `Start the LangExtract web server.

The server renders the extraction form at / and keeps one form per
browser session. Each action is forwarded to the extraction backend.

The server provides:
  - /             - The extraction form
  - /health       - Basic server health check
  - /ready        - Readiness check (backend reachable)
  - /swagger      - API documentation

Examples:
  langextract serve                           # Start on default port 3000
  langextract serve --port 8080               # Start on custom port
  langextract serve --host 0.0.0.0            # Bind to all interfaces
  langextract serve --wait-backend 30s        # Wait for the backend first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := configMgr.Get()

		// Set up logger
		levelVar := &slog.LevelVar{}
		logger := config.NewLogger(cfg.Log, os.Stdout, levelVar)
		slog.SetDefault(logger)

		if file := configMgr.ConfigFile(); file != "" {
			logger.Info("using config file", "path", file)
			configMgr.WatchConfig(func(err error) {
				logger.Warn("config reload failed", "error", err)
			})
		}

		srv, err := server.New(server.Config{
			Host:          cfg.Server.Host,
			Port:          cfg.Server.Port,
			Client:        getClient(),
			SessionTTL:    cfg.SessionTTL,
			MaxSessions:   maxSessions(cfg.MaxSessions),
			PresetsFile:   homeDirs.PresetsFile(cfg.PresetsFile),
			WaitBackend:   waitBackend,
			ConfigManager: configMgr,
			Logger:        logger,
			LevelVar:      levelVar,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "3000", "Port to listen on")
	serveCmd.Flags().DurationVar(&waitBackend, "wait-backend", 0, "Wait up to this long for the backend before serving")

	rootCmd.AddCommand(serveCmd)
}

// maxSessions maps the config value, where 0 means no limit, onto the
// server's, where 0 means the default.
func maxSessions(n int) int {
	if n == 0 {
		return -1
	}
	return n
}
