package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/avolkov/dealbrief/internal/model"
)

// Renderer writes digest reports as JSON, Markdown, or CSV.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.DigestReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal report")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// RenderMarkdown writes the report as a readable briefing document.
func (r *Renderer) RenderMarkdown(report *model.DigestReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# M&A Deal Brief\n\n")
	fmt.Fprintf(&b, "**Source:** %s  \n", report.Source)
	fmt.Fprintf(&b, "**Processed:** %s  \n", report.ProcessedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "**Deals:** %d (%d with disclosed value)\n\n",
		report.Analytics.TotalDeals, report.Analytics.DealsWithValue)

	if report.Filter != nil {
		writeFilterSection(&b, report.Filter)
	}

	if len(report.Deals) > 0 {
		b.WriteString("## Deals\n\n")
		b.WriteString("| # | Title | Sector | Geography | Value | Grade | Risk |\n")
		b.WriteString("|---|-------|--------|-----------|-------|-------|------|\n")
		for _, d := range report.Deals {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				d.ID, escapeCell(d.Title), d.Sector, d.PrimaryGeography,
				d.ValueDisplay, d.ConfidenceGrade, d.Risk.Level)
		}
		b.WriteString("\n")

		for _, d := range report.Deals {
			writeDealDetail(&b, d)
		}
	}

	writeAnalyticsSection(&b, report.Analytics)

	if report.Intelligence != nil {
		b.WriteString("## Intelligence Report\n\n")
		b.WriteString(report.Intelligence.ReportMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n*Generated by dealbrief. Content hash %s.*\n",
			shortHash(report.ContentHash))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// RenderCSV writes one row per deal with the fields analysts pull into
// spreadsheets.
func (r *Renderer) RenderCSV(report *model.DigestReport, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	header := []string{
		"id", "intelligence_id", "title", "section", "sector", "subsector",
		"geography", "value_millions", "currency", "value_display", "size_category",
		"confidence_grade", "confidence_score", "risk_level", "risk_score",
		"rationale", "summary",
	}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "write header")
	}

	for _, d := range report.Deals {
		value := ""
		if d.Financial.HasValue() {
			value = fmt.Sprintf("%.1f", d.Financial.MaxValue())
		}
		row := []string{
			d.ID, d.IntelligenceID, d.Title, d.Section, d.Sector, d.Subsector,
			d.PrimaryGeography, value, d.Financial.Currency, d.ValueDisplay, d.SizeCategory,
			d.ConfidenceGrade, fmt.Sprintf("%.2f", d.ConfidenceScore),
			string(d.Risk.Level), fmt.Sprintf("%.2f", d.Risk.OverallScore),
			d.Rationale.Primary, d.Summary,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "write deal %s", d.ID)
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "flush csv")
}

// WriteSummary prints the run summary for terminal consumption.
func (r *Renderer) WriteSummary(w io.Writer, report *model.DigestReport) {
	fmt.Fprintf(w, "\nProcessed %s: %d deals", report.Source, report.Analytics.TotalDeals)
	if report.Analytics.DealsWithValue > 0 {
		fmt.Fprintf(w, " (%d with disclosed value)", report.Analytics.DealsWithValue)
	}
	fmt.Fprintln(w)

	if report.Filter != nil {
		f := report.Filter
		fmt.Fprintf(w, "Filter: %d/%d sections kept, %d/%d items kept\n",
			f.AllowedSections, f.TotalSections, f.AllowedItems, f.TotalItems)
		if f.NoAllowedCategories {
			fmt.Fprintln(w, "Warning: no sections matched the configured categories")
		}
	}

	for _, d := range report.Deals {
		fmt.Fprintf(w, "  %2s. %-50s %-20s %-12s %s\n",
			d.ID, truncate(d.Title, 50), d.Sector, d.PrimaryGeography, d.ValueDisplay)
	}

	if report.Analytics.TopSector != "" {
		fmt.Fprintf(w, "Top sector: %s\n", report.Analytics.TopSector)
	}
	if report.Intelligence != nil {
		fmt.Fprintf(w, "Intelligence report: %s/%s (%d tokens)\n",
			report.Intelligence.Provider, report.Intelligence.Model, report.Intelligence.TokensUsed)
	}
}

// RenderReport writes the requested output files and the terminal summary.
func (p *Pipeline) RenderReport(report *model.DigestReport, jsonPath, mdPath, csvPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return eris.Wrap(err, "render JSON")
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return eris.Wrap(err, "render markdown")
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}
	if csvPath != "" {
		if err := p.renderer.RenderCSV(report, csvPath); err != nil {
			return eris.Wrap(err, "render CSV")
		}
		if verbose {
			fmt.Printf("Wrote CSV: %s\n", csvPath)
		}
	}

	p.renderer.WriteSummary(os.Stdout, report)
	return nil
}

func writeDealDetail(b *strings.Builder, d model.DealRecord) {
	fmt.Fprintf(b, "### %s. %s\n\n", d.ID, d.Title)
	fmt.Fprintf(b, "- **ID:** %s\n", d.IntelligenceID)
	fmt.Fprintf(b, "- **Sector:** %s", d.Sector)
	if d.Subsector != "" {
		fmt.Fprintf(b, " / %s", d.Subsector)
	}
	fmt.Fprintf(b, " (%.0f%%)\n", d.SectorConfidence*100)
	fmt.Fprintf(b, "- **Geography:** %s", d.PrimaryGeography)
	if len(d.AllGeographies) > 1 {
		fmt.Fprintf(b, " (also: %s)", strings.Join(others(d.AllGeographies, d.PrimaryGeography), ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "- **Value:** %s (%s)\n", d.ValueDisplay, d.SizeCategory)
	fmt.Fprintf(b, "- **Confidence:** %s (%.2f)\n", d.ConfidenceGrade, d.ConfidenceScore)
	fmt.Fprintf(b, "- **Risk:** %s (%.2f, primary factor: %s)\n",
		d.Risk.Level, d.Risk.OverallScore, d.Risk.PrimaryFactor)
	fmt.Fprintf(b, "- **Rationale:** %s\n", d.Rationale.Primary)
	if d.Summary != "" {
		fmt.Fprintf(b, "\n%s\n", d.Summary)
	}
	for _, bullet := range d.Bullets {
		fmt.Fprintf(b, "\n> %s\n", bullet)
	}
	b.WriteString("\n")
}

func writeFilterSection(b *strings.Builder, f *model.FilterReport) {
	b.WriteString("## Category Filter\n\n")
	fmt.Fprintf(b, "Kept %d of %d sections and %d of %d items.\n\n",
		f.AllowedSections, f.TotalSections, f.AllowedItems, f.TotalItems)
	if len(f.FilteredLabels) > 0 {
		fmt.Fprintf(b, "Removed sections: %s\n\n", strings.Join(f.FilteredLabels, ", "))
	}
	if f.NoAllowedCategories {
		b.WriteString("No sections matched the configured categories.\n\n")
	}
}

func writeAnalyticsSection(b *strings.Builder, a model.Analytics) {
	if a.TotalDeals == 0 {
		return
	}
	b.WriteString("## Analytics\n\n")
	writeBreakdown(b, "Sectors", a.SectorBreakdown)
	writeBreakdown(b, "Geographies", a.GeoBreakdown)
	if len(a.CurrencyBreakdown) > 0 {
		writeBreakdown(b, "Currencies", a.CurrencyBreakdown)
	}
}

func writeBreakdown(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(b, "**%s:** ", title)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%d)", k, counts[k]))
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\n\n")
}

func others(all []string, primary string) []string {
	rest := make([]string, 0, len(all))
	for _, g := range all {
		if g != primary {
			rest = append(rest, g)
		}
	}
	return rest
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
