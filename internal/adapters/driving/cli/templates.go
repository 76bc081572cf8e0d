package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/datamoor/csvrelay/internal/adapters/driven/config"
	"github.com/datamoor/csvrelay/internal/adapters/driven/templates/dir"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the loaded table templates",
	Long: `Loads the template directory the same way the watch pipeline does and
prints the header line registered for each table.`,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	templates, err := dir.NewLoader(cfg.TemplateDir).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	if len(templates) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	// Sort by table name for stable output.
	type entry struct{ table, header string }
	entries := make([]entry, 0, len(templates))
	for header, table := range templates {
		entries = append(entries, entry{table: table, header: header})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].table < entries[j].table })

	for _, e := range entries {
		cmd.Printf("%-24s %s\n", e.table, e.header)
	}
	return nil
}
