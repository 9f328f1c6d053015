package model

import "time"

// DigestReport is the complete result of processing one digest.
type DigestReport struct {
	Source      string    `json:"source"`       // file path or "stdin"
	ContentHash string    `json:"content_hash"` // sha256 of the normalized input
	ProcessedAt time.Time `json:"processed_at"`

	Deals     []DealRecord `json:"deals"` // document order
	Analytics Analytics    `json:"analytics"`

	Filter *FilterReport `json:"filter,omitempty"` // present when the category filter ran

	Intelligence *IntelligenceReport `json:"intelligence,omitempty"` // optional LLM report, never affects scoring
}

// Analytics aggregates the deal list for the summary outputs.
type Analytics struct {
	TotalDeals        int            `json:"total_deals"`
	DealsWithValue    int            `json:"deals_with_value"`
	SectorBreakdown   map[string]int `json:"sector_breakdown,omitempty"`
	GeoBreakdown      map[string]int `json:"geography_breakdown,omitempty"`
	CurrencyBreakdown map[string]int `json:"currency_breakdown,omitempty"`
	TopSector         string         `json:"top_sector,omitempty"`
}

// FilterReport documents what the category allow-list filter kept and cut.
type FilterReport struct {
	TotalSections    int      `json:"total_sections"`
	AllowedSections  int      `json:"allowed_sections"`
	FilteredSections int      `json:"filtered_sections"`
	SectionLabels    []string `json:"section_labels,omitempty"`
	AllowedLabels    []string `json:"allowed_labels,omitempty"`
	FilteredLabels   []string `json:"filtered_labels,omitempty"`

	TotalItems   int      `json:"total_items"`
	AllowedItems int      `json:"allowed_items"`
	AllowedIDs   []string `json:"allowed_ids,omitempty"`
	FilteredIDs  []string `json:"filtered_ids,omitempty"`

	PressLinesBefore  int      `json:"press_lines_before"`
	PressLinesAfter   int      `json:"press_lines_after"`
	ExamplePressLines []string `json:"example_press_lines,omitempty"` // at most 3

	NoAllowedCategories bool `json:"no_allowed_categories"` // allow-list matched nothing
}

// IntelligenceReport is the optional LLM-generated narrative over the records.
type IntelligenceReport struct {
	Provider   string   `json:"provider"`
	Model      string   `json:"model"`
	ReportMD   string   `json:"report_md"`
	TokensUsed int      `json:"tokens_used,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
