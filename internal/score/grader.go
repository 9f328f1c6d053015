// Package score grades deal text against the evidence framework and derives
// the strategic rationale and risk profile. All scoring is keyword-driven
// and transparent: every result carries the matches that produced it.
package score

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/taxonomy"
)

// Grade is the confidence grading for one deal.
type Grade struct {
	Grade             string   `json:"grade"`
	Score             float64  `json:"score"` // in [0,1]
	MatchedIndicators []string `json:"matched_indicators,omitempty"`
}

// Grader evaluates the evidence framework in priority order.
type Grader struct {
	framework []taxonomy.GradeEntry
}

// NewGrader creates a grader over the standard framework.
func NewGrader() *Grader {
	return &Grader{framework: taxonomy.ConfidenceFramework()}
}

// Grade returns the first framework grade whose indicators outnumber its
// exclusions in the text. Priority order means a "completed" deal is never
// downgraded by a stray "reportedly". No match yields the pending fallback.
func (g *Grader) Grade(text string) Grade {
	lower := strings.ToLower(text)

	for _, entry := range g.framework {
		var matched []string
		for _, kw := range entry.Indicators {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}

		excluded := 0
		for _, kw := range entry.Exclusions {
			if strings.Contains(lower, strings.ToLower(kw)) {
				excluded++
			}
		}

		net := len(matched) - excluded
		if net <= 0 {
			continue
		}

		score := entry.Weight * float64(net) / float64(len(entry.Indicators))
		if score > 1 {
			score = 1
		}
		return Grade{Grade: entry.Grade, Score: score, MatchedIndicators: matched}
	}

	return Grade{Grade: taxonomy.GradePending, Score: taxonomy.GradePendingScore}
}
