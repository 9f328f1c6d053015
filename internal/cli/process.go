package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/pipeline"
	"github.com/avolkov/dealbrief/internal/store"
)

var (
	outJSON      string
	outMD        string
	outCSV       string
	applyFilter  bool
	noCache      bool
	noFooter     bool
	taxonomyPath string
	timeout      time.Duration

	llmEnabled  bool
	llmProvider string
	llmModel    string

	saveRun bool
	dbPath  string

	filterSector    string
	filterGeography string
	filterMinValue  float64
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process a digest into structured deal records",
	Long: `Process segments a digest into deals and classifies each one:
- Detect numbered deal items and their section headings
- Classify sector and geography from keyword evidence
- Extract enterprise, equity, and transaction values
- Grade evidence confidence and score rationale and risk

Reads from stdin when the file argument is "-".

Example:
  dealbrief process digest.txt
  dealbrief process digest.txt --json report.json --md report.md
  dealbrief process digest.txt --filter --sector tech --min-value 100
  dealbrief process digest.txt --llm openai --save`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	processCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	processCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path")
	processCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Stage flags
	processCmd.Flags().BoolVar(&applyFilter, "filter", false, "apply the category allow-list before segmentation")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable classifier memoization")
	processCmd.Flags().StringVar(&taxonomyPath, "taxonomy", "", "YAML file with sector/geography keyword overrides")
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an intelligence report")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")

	// Persistence flags
	processCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the local database")
	processCmd.Flags().StringVar(&dbPath, "db", "", "database path (default from config)")

	// Record filter flags
	processCmd.Flags().StringVar(&filterSector, "sector", "", "keep only deals matching this sector")
	processCmd.Flags().StringVar(&filterGeography, "geography", "", "keep only deals matching this geography")
	processCmd.Flags().Float64Var(&filterMinValue, "min-value", 0, "keep only deals at or above this value in millions")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if err := resolveAPIKey(cfg); err != nil {
			return err
		}
	} else {
		cfg.LLM.Provider = ""
	}

	tables, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return err
	}

	raw, source, err := readDigest(args[0])
	if err != nil {
		return err
	}

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, tables, logger)
	report, err := p.Process(ctx, raw, source, pipeline.ProcessOptions{
		ApplyFilter:          applyFilter,
		GenerateIntelligence: llmEnabled,
	})
	if err != nil {
		return fmt.Errorf("process digest: %w", err)
	}

	recordFilter := pipeline.RecordFilter{
		Sector:    filterSector,
		Geography: filterGeography,
		MinValue:  filterMinValue,
	}
	if !recordFilter.Empty() {
		before := len(report.Deals)
		pipeline.FilterRecords(report, recordFilter)
		if verbose {
			fmt.Fprintf(os.Stderr, "Record filter kept %d of %d deals\n", len(report.Deals), before)
		}
	}

	if saveRun || cfg.Store.Enabled {
		path := dbPath
		if path == "" {
			path = cfg.Store.Path
		}
		if err := persistRun(ctx, path, report); err != nil {
			return err
		}
	}

	if err := p.RenderReport(report, outJSON, outMD, outCSV, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// persistRun saves the report, replacing any earlier run of the same input.
func persistRun(ctx context.Context, path string, report *model.DigestReport) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	runID, replaced, err := db.SaveReport(ctx, report)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if replaced {
		fmt.Fprintf(os.Stderr, "Saved run %s (replaced an earlier run of the same content)\n", runID)
	} else {
		fmt.Fprintf(os.Stderr, "Saved run %s\n", runID)
	}
	return nil
}

// readDigest reads the digest body from a file, or stdin when path is "-".
func readDigest(path string) (content, source string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read digest: %w", err)
	}
	return string(data), path, nil
}
