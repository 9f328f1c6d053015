package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avolkov/dealbrief/internal/pipeline"
	"github.com/avolkov/dealbrief/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchSave    bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Process multiple digests from a manifest in parallel",
	Long: `Batch processes many digest files concurrently:
- Read digest paths from a manifest file (one per line, # comments allowed)
- Process digests in parallel with a configurable worker count
- Write JSON and Markdown reports per digest

Example:
  dealbrief batch digests.txt
  dealbrief batch digests.txt --concurrency 8 --output-dir ./briefs
  dealbrief batch digests.txt --save --db runs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./dealbrief-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "persist each run to the local database")
	batchCmd.Flags().StringVar(&dbPath, "db", "", "database path (default from config)")
	batchCmd.Flags().StringVar(&taxonomyPath, "taxonomy", "", "YAML file with sector/geography keyword overrides")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tables, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, tables, logger)
	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "Processing manifest %s with %d workers\n", manifest, concurrency)
	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := reportSlug(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		if batchSave || cfg.Store.Enabled {
			path := dbPath
			if path == "" {
				path = cfg.Store.Path
			}
			if err := persistRun(ctx, path, result.Report); err != nil {
				fmt.Fprintf(os.Stderr, "WARN %s: %v\n", result.Path, err)
			}
		}

		successCount++
		fmt.Fprintf(os.Stderr, "OK   %s: %d deals\n", result.Path, result.Report.Analytics.TotalDeals)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)
	if failureCount > 0 {
		return fmt.Errorf("%d of %d digests failed", failureCount, len(results))
	}
	return nil
}

// reportSlug derives an output file stem from a digest path.
func reportSlug(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	slug := b.String()
	if len(slug) > 100 {
		slug = slug[:100]
	}
	if slug == "" {
		slug = "digest"
	}
	return slug
}
