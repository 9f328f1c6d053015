package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avolkov/dealbrief/internal/store"
)

var (
	historyLimit int
	historyShow  string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or inspect saved digest runs",
	Long: `History lists the digest runs saved with --save, newest first.
Use --show to print one saved report as JSON.

Example:
  dealbrief history
  dealbrief history --limit 50
  dealbrief history --show 01J5ZX5R4GQ8K3T2M7W9E1YBCD`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "print the full report for this run id")
	historyCmd.Flags().StringVar(&dbPath, "db", "", "database path (default from config)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := dbPath
	if path == "" {
		path = cfg.Store.Path
	}

	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	if historyShow != "" {
		report, err := db.LoadReport(ctx, historyShow)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	runs, err := db.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tPROCESSED\tDEALS\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			r.RunID, r.ProcessedAt.Format("2006-01-02 15:04"), r.DealCount, r.Source)
	}
	return w.Flush()
}
