package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
)

// promptDeal is the trimmed view of a record serialized into the prompt.
type promptDeal struct {
	Title     string   `json:"title"`
	Sector    string   `json:"sector"`
	Geography string   `json:"geography"`
	Value     string   `json:"value,omitempty"`
	Size      string   `json:"size"`
	Grade     string   `json:"grade"`
	Risk      string   `json:"risk"`
	Rationale string   `json:"rationale"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// BuildPrompt serializes the deal records into the report-generation prompt.
func BuildPrompt(deals []model.DealRecord) string {
	trimmed := make([]promptDeal, 0, len(deals))
	for i, d := range deals {
		if i >= maxPromptDeals {
			break
		}
		points := d.Bullets
		if len(points) > 3 {
			points = points[:3]
		}
		trimmed = append(trimmed, promptDeal{
			Title:     d.Title,
			Sector:    d.Sector,
			Geography: d.PrimaryGeography,
			Value:     d.ValueDisplay,
			Size:      d.SizeCategory,
			Grade:     d.ConfidenceGrade,
			Risk:      string(d.Risk.Level),
			Rationale: d.Rationale.Primary,
			KeyPoints: points,
		})
	}

	data, err := json.MarshalIndent(trimmed, "", "  ")
	if err != nil {
		data = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following %d M&A deals and write an intelligence report.\n\n", len(trimmed))
	b.WriteString("DEAL DATA:\n")
	b.Write(data)
	b.WriteString(`

Write a markdown report with these sections:

1. EXECUTIVE SUMMARY (3-4 sentences): key trends and the most significant transactions.
2. SECTOR ANALYSIS: dominant sectors, activity levels, consolidation patterns.
3. GEOGRAPHIC INSIGHTS: regional concentration and cross-border activity.
4. DEAL VALUE ASSESSMENT: valuation trends, large vs mid-market activity.
5. KEY STRATEGIC THEMES: the rationale categories driving these deals.
6. ACTIONABLE RECOMMENDATIONS: sectors to watch and timing considerations.

Reference specific deals by title. Keep it data-driven and concise.`)

	return b.String()
}
