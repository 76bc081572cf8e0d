package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datamoor/csvrelay/internal/adapters/driven/config"
	"github.com/datamoor/csvrelay/internal/adapters/driven/storage/sqlite"
	"github.com/datamoor/csvrelay/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent transfer outcomes",
	Long: `Prints the most recent terminal outcomes recorded by the watch
pipeline, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	records, err := store.HistoryStore().ListRecent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing transfer history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No transfer history recorded.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %-10s %-16s %s%s\n",
			rec.EndedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Status,
			tableOrDash(rec),
			rec.File,
			reasonSuffix(rec))
	}
	return nil
}

func tableOrDash(rec domain.TransferRecord) string {
	if rec.Table == "" {
		return "-"
	}
	return rec.Table
}

func reasonSuffix(rec domain.TransferRecord) string {
	if rec.Reason == "" {
		return ""
	}
	return "  (" + rec.Reason + ")"
}
