package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/dealbrief/internal/model"
)

func sampleDeals(n int) []model.DealRecord {
	deals := make([]model.DealRecord, n)
	for i := range deals {
		deals[i] = model.DealRecord{
			ID:               fmt.Sprintf("%d", i+1),
			Title:            fmt.Sprintf("Deal number %d", i+1),
			Sector:           "Technology",
			PrimaryGeography: "UK",
			SizeCategory:     "Value TBD",
			ConfidenceGrade:  "Developing",
			Risk:             model.RiskAssessment{Level: model.RiskMedium},
			Rationale:        model.RationaleAssessment{Primary: "Market Expansion"},
			Bullets:          []string{"first point", "second point", "third point", "fourth point"},
		}
	}
	return deals
}

func TestBuildPromptIncludesDealData(t *testing.T) {
	prompt := BuildPrompt(sampleDeals(2))

	assert.Contains(t, prompt, "Deal number 1")
	assert.Contains(t, prompt, "Technology")
	assert.Contains(t, prompt, "EXECUTIVE SUMMARY")
	assert.Contains(t, prompt, "ACTIONABLE RECOMMENDATIONS")
}

func TestBuildPromptTruncatesDealsAndBullets(t *testing.T) {
	prompt := BuildPrompt(sampleDeals(40))

	assert.Contains(t, prompt, fmt.Sprintf("Deal number %d", maxPromptDeals))
	assert.NotContains(t, prompt, fmt.Sprintf("Deal number %d", maxPromptDeals+1))
	assert.NotContains(t, prompt, "fourth point")
	assert.True(t, strings.Contains(prompt, "third point"))
}

func TestNewProviderSelection(t *testing.T) {
	p, err := NewProvider(Config{Provider: "", APIKey: "x"})
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	assert.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = NewProvider(Config{Provider: "claude", APIKey: "sk-ant-test"})
	assert.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	_, err = NewProvider(Config{Provider: "mystery", APIKey: "x"})
	assert.Error(t, err)

	_, err = NewProvider(Config{Provider: "openai"})
	assert.Error(t, err, "missing API key must fail")
}
