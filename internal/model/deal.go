package model

import "time"

// DealBlock holds the raw fields recovered for one numbered digest item.
// It is built up during segmentation and folded into a DealRecord afterwards.
type DealBlock struct {
	ID           string            `json:"id"`            // digit string from the "N." marker
	Title        string            `json:"title"`         // remainder of the deal-start line
	Section      string            `json:"section"`       // section label active when the deal opened
	Bullets      []string          `json:"bullets"`       // "*"-prefixed detail lines
	Metadata     map[string]string `json:"metadata"`      // recognized "Key: value" lines, lower-cased keys
	Body         string            `json:"body"`          // accumulated substantive prose
	OriginalText string            `json:"original_text"` // everything between the marker and the next boundary
}

// FullText returns the title plus every line that followed it, which is what
// the financial extractor scans.
func (b *DealBlock) FullText() string {
	if b.OriginalText == "" {
		return b.Title
	}
	return b.Title + "\n" + b.OriginalText
}

// FinancialData holds the extracted monetary value for a deal. At most one of
// the three value fields is set per extraction pass; values are in millions.
type FinancialData struct {
	EnterpriseValue  *float64 `json:"enterprise_value,omitempty"`
	EquityValue      *float64 `json:"equity_value,omitempty"`
	TransactionValue *float64 `json:"transaction_value,omitempty"`
	Currency         string   `json:"currency,omitempty"` // EUR, USD, GBP, CNY; empty when nothing matched
	Matched          string   `json:"matched,omitempty"`  // source substring the value came from
	Confidence       float64  `json:"confidence"`         // 0.8 once any value parsed, else 0
}

// MaxValue returns the largest populated value field, or 0.
func (f FinancialData) MaxValue() float64 {
	max := 0.0
	for _, v := range []*float64{f.EnterpriseValue, f.EquityValue, f.TransactionValue} {
		if v != nil && *v > max {
			max = *v
		}
	}
	return max
}

// HasValue reports whether any value field is populated.
func (f FinancialData) HasValue() bool {
	return f.EnterpriseValue != nil || f.EquityValue != nil || f.TransactionValue != nil
}

// RiskLevel buckets the overall risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskAssessment is the risk side of a deal record.
type RiskAssessment struct {
	OverallScore  float64            `json:"overall_risk_score"` // in [0,1]
	Level         RiskLevel          `json:"risk_level"`
	Factors       map[string]float64 `json:"factors"` // regulatory, execution, market, financial
	PrimaryFactor string             `json:"primary_factor"`
}

// RationaleAssessment is the strategic-rationale side of a deal record.
type RationaleAssessment struct {
	Primary string             `json:"primary"`
	Scores  map[string]float64 `json:"scores"` // category -> matched/total
}

// DealRecord is the immutable output unit for one detected deal.
type DealRecord struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Section      string            `json:"section,omitempty"`
	Bullets      []string          `json:"bullets,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	OriginalText string            `json:"original_text,omitempty"`

	Sector              string   `json:"sector"`
	Subsector           string   `json:"subsector,omitempty"`
	SectorConfidence    float64  `json:"sector_confidence"`
	PrimaryGeography    string   `json:"primary_geography"`
	AllGeographies      []string `json:"all_geographies,omitempty"`
	GeographyConfidence float64  `json:"geography_confidence"`

	Financial    FinancialData `json:"financial"`
	ValueDisplay string        `json:"value_display"`
	SizeCategory string        `json:"size_category"`

	ConfidenceGrade   string   `json:"confidence_grade"`
	ConfidenceScore   float64  `json:"confidence_score"`
	MatchedIndicators []string `json:"matched_indicators,omitempty"`

	Rationale RationaleAssessment `json:"rationale"`
	Risk      RiskAssessment      `json:"risk"`

	IntelligenceID string    `json:"intelligence_id"` // stable function of ID + title
	ProcessedAt    time.Time `json:"processed_at"`
}
