package score

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/taxonomy"
)

// riskWeight scales the summed factor scores into the overall risk formula.
const riskWeight = 0.2

// RiskScorer derives a risk profile from factor keyword density plus the
// inverse of the confidence score: poorly evidenced deals are risky deals.
type RiskScorer struct {
	factors []taxonomy.StrategyEntry
}

// NewRiskScorer creates a risk scorer over the standard factors.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{factors: taxonomy.RiskFactors()}
}

// Score computes per-factor scores and the overall risk level.
// overall = min((1 - confidence) + 0.2 * sum(factor scores), 1).
func (r *RiskScorer) Score(text string, confidenceScore float64) model.RiskAssessment {
	lower := strings.ToLower(text)

	res := model.RiskAssessment{
		PrimaryFactor: taxonomy.RiskFallback,
		Factors:       make(map[string]float64, len(r.factors)),
	}

	sum := 0.0
	best := 0.0
	for _, factor := range r.factors {
		matched := 0
		for _, kw := range factor.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched++
			}
		}
		score := 0.0
		if len(factor.Keywords) > 0 {
			score = float64(matched) / float64(len(factor.Keywords))
			if score > 1 {
				score = 1
			}
		}
		res.Factors[factor.Name] = score
		sum += score
		if score > best {
			best = score
			res.PrimaryFactor = factor.Name
		}
	}

	overall := (1 - confidenceScore) + riskWeight*sum
	if overall > 1 {
		overall = 1
	}
	if overall < 0 {
		overall = 0
	}
	res.OverallScore = overall

	switch {
	case overall > 0.7:
		res.Level = model.RiskHigh
	case overall > 0.4:
		res.Level = model.RiskMedium
	default:
		res.Level = model.RiskLow
	}

	return res
}
