package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avolkov/dealbrief/internal/pipeline"
)

var (
	filterOutput     string
	filterCategories []string
	filterShowReport bool
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "Filter a digest down to the allowed categories",
	Long: `Filter removes every section whose heading is not on the category
allow-list, keeping the detailed write-ups of allowed items wherever they
appear in the document. The filtered digest goes to stdout or --output.

Reads from stdin when the file argument is "-".

Example:
  dealbrief filter digest.txt
  dealbrief filter digest.txt --categories "Automotive,Computer software"
  dealbrief filter digest.txt --output filtered.txt --report`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "write the filtered digest to this file instead of stdout")
	filterCmd.Flags().StringSliceVar(&filterCategories, "categories", nil, "allowed section labels (default from config)")
	filterCmd.Flags().BoolVar(&filterShowReport, "report", false, "print the filtering report to stderr")
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(filterCategories) > 0 {
		cfg.AllowedCategories = filterCategories
	}

	raw, source, err := readDigest(args[0])
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, nil, buildLogger())
	result := p.FilterText(raw)

	if filterOutput != "" {
		if err := os.WriteFile(filterOutput, []byte(result.Output+"\n"), 0o644); err != nil {
			return fmt.Errorf("write filtered digest: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote filtered digest: %s\n", filterOutput)
	} else {
		fmt.Println(result.Output)
	}

	if filterShowReport || verbose {
		r := result.Report
		fmt.Fprintf(os.Stderr, "\nFilter report for %s:\n", source)
		fmt.Fprintf(os.Stderr, "  Sections: %d/%d kept\n", r.AllowedSections, r.TotalSections)
		fmt.Fprintf(os.Stderr, "  Items:    %d/%d kept\n", r.AllowedItems, r.TotalItems)
		if len(r.FilteredLabels) > 0 {
			fmt.Fprintf(os.Stderr, "  Removed:  %s\n", strings.Join(r.FilteredLabels, ", "))
		}
		if r.PressLinesBefore > 0 {
			fmt.Fprintf(os.Stderr, "  Press lines: %d before, %d after\n", r.PressLinesBefore, r.PressLinesAfter)
		}
		if r.NoAllowedCategories {
			fmt.Fprintln(os.Stderr, "  Warning: no sections matched the configured categories")
		}
	}
	return nil
}
