package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/dealbrief/internal/model"
)

func TestRiskFormula(t *testing.T) {
	r := NewRiskScorer()

	// No factor keywords: overall is exactly the inverse confidence.
	res := r.Score("clean text with no factor words", 0.8)
	assert.InDelta(t, 0.2, res.OverallScore, 1e-9)
	assert.Equal(t, model.RiskLow, res.Level)
	assert.Equal(t, "execution", res.PrimaryFactor)
}

func TestRiskFactorsRaiseScore(t *testing.T) {
	r := NewRiskScorer()

	withFactors := r.Score("antitrust approval pending, heavy debt and leverage concerns", 0.8)
	without := r.Score("nothing risky mentioned", 0.8)

	assert.Greater(t, withFactors.OverallScore, without.OverallScore)
	assert.Greater(t, withFactors.Factors["regulatory"], 0.0)
	assert.Greater(t, withFactors.Factors["financial"], 0.0)
}

func TestRiskPrimaryFactor(t *testing.T) {
	r := NewRiskScorer()

	res := r.Score("the regulator demands antitrust clearance and regulatory approval", 0.9)
	assert.Equal(t, "regulatory", res.PrimaryFactor)
}

func TestRiskLevels(t *testing.T) {
	r := NewRiskScorer()

	low := r.Score("no risk words", 1.0)
	assert.Equal(t, model.RiskLow, low.Level)

	medium := r.Score("no risk words", 0.4)
	assert.Equal(t, model.RiskMedium, medium.Level)

	high := r.Score("no risk words", 0.1)
	assert.Equal(t, model.RiskHigh, high.Level)
}

func TestRiskCappedAtOne(t *testing.T) {
	r := NewRiskScorer()

	res := r.Score("antitrust regulator regulatory approval clearance cfius competition authority "+
		"integration complex delay financing conditions uncertain unclear "+
		"competition headwinds cyclical demand volatility downturn "+
		"debt leverage loss-making impairment writedown covenant", 0.0)
	assert.Equal(t, 1.0, res.OverallScore)
	assert.Equal(t, model.RiskHigh, res.Level)
}

func TestRiskAllFactorsReported(t *testing.T) {
	r := NewRiskScorer()

	res := r.Score("any text", 0.5)
	assert.Len(t, res.Factors, 4)
	for name, score := range res.Factors {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 1.0, name)
	}
}
