// Package serve handles the serve command
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/api"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger as a read-only JSON API",
	Long: `Start an HTTP server exposing months, transactions, summaries, projections
and history as JSON. Files added to or changed in the input directory are
picked up on the next request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Serve(ctx, root.AppContainer, addr)
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")
}

// Serve preloads the ledger and runs the API until ctx is done.
func Serve(ctx context.Context, c *container.Container, addr string) error {
	if c == nil {
		return fmt.Errorf("application container is not initialized")
	}
	cfg := c.GetConfig()
	if addr == "" {
		addr = cfg.Server.Addr
	}
	logger := c.GetLogger()

	l, err := c.LoadLedger(cfg.Data.Directory)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	logger.Info("Ledger preloaded",
		logging.F(logging.FieldDirectory, cfg.Data.Directory),
		logging.F(logging.FieldCount, l.Len()))

	handler := api.NewHandler(c, cfg.Data.Directory, logger)
	return api.NewServer(addr, api.NewRouter(handler, logger), logger).Run(ctx)
}
