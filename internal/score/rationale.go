package score

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/taxonomy"
)

// RationaleScorer derives the strategic rationale behind a deal from
// keyword density per category.
type RationaleScorer struct {
	categories []taxonomy.StrategyEntry
}

// NewRationaleScorer creates a rationale scorer over the standard categories.
func NewRationaleScorer() *RationaleScorer {
	return &RationaleScorer{categories: taxonomy.Rationales()}
}

// Score returns every category's matched/total ratio plus the primary
// rationale; no match falls back to the generic expansion label.
func (r *RationaleScorer) Score(text string) model.RationaleAssessment {
	lower := strings.ToLower(text)

	res := model.RationaleAssessment{
		Primary: taxonomy.RationaleFallback,
		Scores:  make(map[string]float64, len(r.categories)),
	}

	best := 0.0
	for _, cat := range r.categories {
		matched := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched++
			}
		}
		if matched == 0 || len(cat.Keywords) == 0 {
			continue
		}
		score := float64(matched) / float64(len(cat.Keywords))
		res.Scores[cat.Name] = score
		if score > best {
			best = score
			res.Primary = cat.Name
		}
	}

	return res
}
