package taxonomy

// GradeEntry is one row of the evidence framework. Rows are evaluated in
// slice order and the first grade with a positive net indicator count wins,
// so order encodes priority.
type GradeEntry struct {
	Grade      string
	Weight     float64 // in (0,1]
	Indicators []string
	Exclusions []string // matches subtract from the indicator count
}

// ConfidenceFramework returns the grade rows in priority order:
// confirmed, strong evidence, developing, rumored.
func ConfidenceFramework() []GradeEntry {
	return []GradeEntry{
		{
			Grade:  "Confirmed",
			Weight: 1.0,
			Indicators: []string{
				"completed", "completes", "has acquired", "closed the deal",
				"signed a definitive", "finalised", "finalized", "transaction closed",
			},
			Exclusions: []string{"expected to complete", "not completed", "yet to complete"},
		},
		{
			Grade:  "Strong Evidence",
			Weight: 0.8,
			Indicators: []string{
				"strong evidence", "announced", "confirmed by", "official statement",
				"mandate awarded", "definitive agreement", "term sheet", "agreed to acquire",
			},
			Exclusions: []string{"denied", "unconfirmed"},
		},
		{
			Grade:  "Developing",
			Weight: 0.6,
			Indicators: []string{
				"in talks", "preps", "exploring", "considering", "plans to",
				"seeks", "negotiations", "due diligence", "shortlisted",
			},
			Exclusions: []string{"abandoned", "called off", "walked away"},
		},
		{
			Grade:  "Rumored",
			Weight: 0.4,
			Indicators: []string{
				"reportedly", "rumored", "rumoured", "speculation", "sources said",
				"according to sources", "- report", "market chatter",
			},
			Exclusions: []string{"denied the report"},
		},
	}
}

// Fallback grade when no framework row matches.
const (
	GradePending      = "Pending Assessment"
	GradePendingScore = 0.3
)
