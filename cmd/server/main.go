/*
main.go - Application entry point

PURPOSE:
  Starts the cash flow forecast lab API server. Handles configuration,
  preset loading and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (TOML, .env, environment)
  3. Build the preset catalog
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  TOML config file (default: config.toml, optional)
  -port    HTTP server port, overrides config and environment

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  ./server
  ./server -config=./deploy/config.toml
  CASHFLOW_LOG_FORMAT=text ./server -port=3000

SEE ALSO:
  - api/run.go: Server lifecycle
  - api/server.go: Router configuration
  - config/config.go: Settings and environment variables
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/warp/cashflow-lab/api"
	"github.com/warp/cashflow-lab/config"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.toml", "TOML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
