package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datamoor/csvrelay/internal/adapters/driven/audit"
	"github.com/datamoor/csvrelay/internal/adapters/driven/config"
	"github.com/datamoor/csvrelay/internal/adapters/driven/storage/sqlite"
	"github.com/datamoor/csvrelay/internal/adapters/driven/templates/dir"
	"github.com/datamoor/csvrelay/internal/adapters/driven/transfer/rsync"
	"github.com/datamoor/csvrelay/internal/connectors/filesystem"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the watch-and-forward pipeline",
	Long: `Starts the pipeline: the source directory is watched recursively,
modified CSV files are matched against the table templates, and matched
files are transferred to the remote host. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	templates, err := dir.NewLoader(cfg.TemplateDir).Load(ctx)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	auditLog := audit.New()
	transferer := rsync.New(cfg.DestUser, cfg.DestHost, cfg.DestDir)
	monitor := filesystem.New(cfg.SourceDir, cfg.PollInterval)
	defer monitor.Close()

	// History is supplemental; the pipeline runs without it.
	var history driven.HistoryStore
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		log.Printf("watch: transfer history unavailable: %v", err)
	} else {
		defer store.Close()
		history = store.HistoryStore()
	}

	forwarder := services.NewForwarder(
		monitor,
		services.NewRouter(templates, auditLog),
		services.NewDispatcher(transferer, auditLog, cfg.TransferTimeout),
		auditLog,
		history,
	)

	cmd.Printf("Watching %s for CSV drops (%d templates, destination %s@%s:%s)\n",
		cfg.SourceDir, len(templates), cfg.DestUser, cfg.DestHost, cfg.DestDir)

	if err := forwarder.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cmd.Println("Shutting down.")
	return nil
}
