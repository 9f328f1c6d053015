// Package pipeline orchestrates the full digest run: normalize, optionally
// filter by category, segment into deals, classify, extract financials,
// grade, score, and finalize the records.
package pipeline

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/avolkov/dealbrief/internal/cache"
	"github.com/avolkov/dealbrief/internal/classify"
	"github.com/avolkov/dealbrief/internal/filter"
	"github.com/avolkov/dealbrief/internal/finance"
	"github.com/avolkov/dealbrief/internal/ingest"
	"github.com/avolkov/dealbrief/internal/llm"
	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/score"
	"github.com/avolkov/dealbrief/internal/segment"
	"github.com/avolkov/dealbrief/internal/taxonomy"
)

// Pipeline wires the stages of a digest run together.
type Pipeline struct {
	segmenter  *segment.Segmenter
	classifier *classify.Classifier
	extractor  *finance.Extractor
	grader     *score.Grader
	rationale  *score.RationaleScorer
	risk       *score.RiskScorer
	filter     *filter.Filter
	renderer   *Renderer
	reporter   *llm.Reporter
	config     *model.Config
	log        *zap.Logger
}

// New creates a pipeline from configuration. tables may be nil to use the
// built-in taxonomy; logger may be nil to disable logging.
func New(cfg *model.Config, tables *taxonomy.Tables, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var memo *cache.Memo
	if cfg.Cache.Enabled {
		memo = cache.NewMemo(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	var reporter *llm.Reporter
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			logger.Warn("LLM provider unavailable, intelligence reports disabled",
				zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		} else if provider != nil {
			reporter = llm.NewReporter(provider, llm.ConfigFromModel(cfg.LLM), cfg.LLM.RequestsPerMinute)
		}
	}

	return &Pipeline{
		segmenter:  segment.NewSegmenter(),
		classifier: classify.NewClassifier(tables, cfg.ConfidenceThreshold, memo),
		extractor:  finance.NewExtractor(cfg.BaseCurrency),
		grader:     score.NewGrader(),
		rationale:  score.NewRationaleScorer(),
		risk:       score.NewRiskScorer(),
		filter:     filter.New(cfg.AllowedCategories),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		reporter:   reporter,
		config:     cfg,
		log:        logger,
	}
}

// ProcessOptions selects the optional stages for one run.
type ProcessOptions struct {
	// ApplyFilter runs the category allow-list over the raw text before
	// segmentation, so only permitted sections produce records.
	ApplyFilter bool

	// GenerateIntelligence asks the configured LLM for a narrative report
	// after scoring. It never affects the records themselves.
	GenerateIntelligence bool
}

// Process runs the pipeline over one digest and returns the full report.
func (p *Pipeline) Process(ctx context.Context, raw, source string, opts ProcessOptions) (*model.DigestReport, error) {
	text := ingest.Normalize(raw)
	if strings.TrimSpace(text) == "" {
		return nil, eris.New("empty digest")
	}

	hash := sha256.Sum256([]byte(text))
	report := &model.DigestReport{
		Source:      source,
		ContentHash: hex.EncodeToString(hash[:]),
		ProcessedAt: time.Now().UTC(),
	}

	if opts.ApplyFilter {
		filtered := p.filter.Apply(text)
		report.Filter = &filtered.Report
		text = filtered.Output
		p.log.Debug("category filter applied",
			zap.Int("sections_allowed", filtered.Report.AllowedSections),
			zap.Int("items_allowed", filtered.Report.AllowedItems))
	}

	blocks := p.segmenter.Segment(text)
	p.log.Info("digest segmented",
		zap.String("source", source),
		zap.Int("deals", len(blocks)))

	now := report.ProcessedAt
	report.Deals = make([]model.DealRecord, 0, len(blocks))
	for _, block := range blocks {
		report.Deals = append(report.Deals, p.finalize(block, now))
	}
	report.Analytics = computeAnalytics(report.Deals)

	if opts.GenerateIntelligence && p.reporter.Enabled() && len(report.Deals) > 0 {
		intel, err := p.reporter.Generate(ctx, report.Deals)
		if err != nil {
			// A failed narrative never fails the run.
			p.log.Warn("intelligence report generation failed", zap.Error(err))
		} else {
			report.Intelligence = intel
		}
	}

	return report, nil
}

// ProcessFile reads and processes one digest file with the default stages.
// It satisfies the batch worker's Processor interface.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.DigestReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read digest %s", path)
	}
	return p.Process(ctx, string(data), path, ProcessOptions{})
}

// FilterText runs only the category allow-list over a digest.
func (p *Pipeline) FilterText(raw string) *filter.Result {
	return p.filter.Apply(ingest.Normalize(raw))
}

// finalize folds one segmented block into an immutable deal record.
func (p *Pipeline) finalize(block model.DealBlock, now time.Time) model.DealRecord {
	full := block.FullText()

	sector := p.classifier.Sector(block.Title, block.Body, block.Section)
	geo := p.classifier.Geography(block.Title, block.Body)
	financial := p.extractor.Extract(full)
	grade := p.grader.Grade(full)

	rec := model.DealRecord{
		ID:           block.ID,
		Title:        block.Title,
		Section:      block.Section,
		Bullets:      block.Bullets,
		Metadata:     block.Metadata,
		Summary:      summaryLine(block),
		OriginalText: block.OriginalText,

		Sector:              sector.Sector,
		Subsector:           sector.Subsector,
		SectorConfidence:    sector.Confidence,
		PrimaryGeography:    geo.Primary,
		AllGeographies:      geo.All,
		GeographyConfidence: geo.Confidence,

		Financial:    financial,
		ValueDisplay: valueDisplay(financial, block.Metadata),
		SizeCategory: finance.SizeCategory(financial),

		ConfidenceGrade:   grade.Grade,
		ConfidenceScore:   grade.Score,
		MatchedIndicators: grade.MatchedIndicators,

		Rationale: p.rationale.Score(full),

		IntelligenceID: intelligenceID(block.ID, block.Title),
		ProcessedAt:    now,
	}
	rec.Risk = p.risk.Score(full, rec.ConfidenceScore)
	return rec
}

// summaryLine picks the first substantive body line as the one-line summary.
func summaryLine(block model.DealBlock) string {
	for _, line := range strings.Split(block.Body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	if len(block.Bullets) > 0 {
		return block.Bullets[0]
	}
	return ""
}

// valueDisplay formats the extracted value, falling back to any size hint
// the digest itself carried.
func valueDisplay(fd model.FinancialData, metadata map[string]string) string {
	if fd.HasValue() {
		return finance.FormatValue(fd)
	}
	if v, ok := metadata["value"]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := metadata["size"]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return finance.SizeUnknown
}

// intelligenceID derives the stable per-deal identifier. The same id and
// title always produce the same identifier across runs.
func intelligenceID(id, title string) string {
	sum := sha1.Sum([]byte(title))
	return fmt.Sprintf("INT-%s-%s", id, hex.EncodeToString(sum[:4]))
}

func computeAnalytics(deals []model.DealRecord) model.Analytics {
	a := model.Analytics{TotalDeals: len(deals)}
	if len(deals) == 0 {
		return a
	}

	a.SectorBreakdown = make(map[string]int)
	a.GeoBreakdown = make(map[string]int)
	a.CurrencyBreakdown = make(map[string]int)

	for _, d := range deals {
		a.SectorBreakdown[d.Sector]++
		a.GeoBreakdown[d.PrimaryGeography]++
		if d.Financial.HasValue() {
			a.DealsWithValue++
			a.CurrencyBreakdown[d.Financial.Currency]++
		}
	}

	best := 0
	for sector, n := range a.SectorBreakdown {
		if n > best || (n == best && sector < a.TopSector) {
			best = n
			a.TopSector = sector
		}
	}
	return a
}

// RecordFilter narrows a finished deal list for display or export.
type RecordFilter struct {
	Sector    string
	Geography string
	MinValue  float64 // millions
}

// Empty reports whether the filter would keep everything.
func (f RecordFilter) Empty() bool {
	return f.Sector == "" && f.Geography == "" && f.MinValue <= 0
}

// ApplyRecordFilter returns the records matching every set criterion.
// Sector and geography match case-insensitively on substring, so
// "--sector tech" matches "Technology".
func ApplyRecordFilter(deals []model.DealRecord, f RecordFilter) []model.DealRecord {
	if f.Empty() {
		return deals
	}

	kept := make([]model.DealRecord, 0, len(deals))
	for _, d := range deals {
		if f.Sector != "" && !containsFold(d.Sector, f.Sector) && !containsFold(d.Subsector, f.Sector) {
			continue
		}
		if f.Geography != "" {
			matched := containsFold(d.PrimaryGeography, f.Geography)
			for _, g := range d.AllGeographies {
				matched = matched || containsFold(g, f.Geography)
			}
			if !matched {
				continue
			}
		}
		if f.MinValue > 0 && d.Financial.MaxValue() < f.MinValue {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// FilterRecords narrows a finished report in place and recomputes its
// analytics over the surviving deals.
func FilterRecords(report *model.DigestReport, f RecordFilter) {
	if f.Empty() {
		return
	}
	report.Deals = ApplyRecordFilter(report.Deals, f)
	report.Analytics = computeAnalytics(report.Deals)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
