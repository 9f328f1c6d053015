package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/dealbrief/internal/cache"
	"github.com/avolkov/dealbrief/internal/taxonomy"
)

func newTestClassifier() *Classifier {
	return NewClassifier(nil, 0.7, nil)
}

func TestSectorKeywordMatch(t *testing.T) {
	tables := &taxonomy.Tables{
		Sectors: []taxonomy.SectorEntry{
			{Name: "Energy", Keywords: []string{"solar", "wind"}},
			{Name: "Healthcare", Keywords: []string{"pharma", "clinical"}},
		},
	}
	c := NewClassifier(tables, 0.7, nil)

	res := c.Sector("Solar and wind portfolio sale", "", "")
	assert.Equal(t, "Energy", res.Sector)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestSectorSubsectorDoubleWeight(t *testing.T) {
	tables := &taxonomy.Tables{
		Sectors: []taxonomy.SectorEntry{
			{
				Name:     "Automotive",
				Keywords: []string{"car"},
				Subsectors: map[string][]string{
					"Electric Vehicles": {"battery"},
				},
			},
		},
	}
	c := NewClassifier(tables, 0.7, nil)

	// car (1) + battery (2) over 2 total keywords, capped at 1.
	res := c.Sector("Car battery maker sold", "", "")
	assert.Equal(t, "Automotive", res.Sector)
	assert.Equal(t, "Electric Vehicles", res.Subsector)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestSectorSectionFallback(t *testing.T) {
	c := newTestClassifier()

	res := c.Sector("Adarga raises growth round", "the startup raised new funding", "Technology")
	assert.Equal(t, "Technology", res.Sector)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestSectorOtherFallback(t *testing.T) {
	c := newTestClassifier()

	res := c.Sector("Unrelated headline about nothing in particular", "", "")
	assert.Equal(t, "Other", res.Sector)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestGeographyPrimaryAndAll(t *testing.T) {
	c := newTestClassifier()

	res := c.Geography("German group buys French rival", "the Paris headquarters will be retained")
	assert.Contains(t, res.All, "Germany")
	assert.Contains(t, res.All, "France")
	// France scores keyword + city over two keywords and wins primary.
	assert.Equal(t, "France", res.Primary)
	assert.Greater(t, res.Confidence, 0.0)
}

func TestGeographyGlobalFallback(t *testing.T) {
	c := newTestClassifier()

	res := c.Geography("No places named here", "")
	assert.Equal(t, "Global", res.Primary)
	assert.Empty(t, res.All)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestKeywordTokenBoundaries(t *testing.T) {
	c := newTestClassifier()

	// "us" must not match inside "business".
	res := c.Geography("Business combination of two private groups", "")
	assert.NotContains(t, res.All, "USA")
}

func TestMemoizedResultsStable(t *testing.T) {
	memo := cache.NewMemo(time.Minute, time.Minute)
	c := NewClassifier(nil, 0.7, memo)

	first := c.Sector("Cloud software platform deal", "", "Technology")
	second := c.Sector("Cloud software platform deal", "", "Technology")
	assert.Equal(t, first, second)

	// Same title under a different section is a different memo entry.
	other := c.Sector("Cloud software platform deal", "", "Automotive")
	if other.Confidence == sectionFallbackConfidence {
		assert.NotEqual(t, first.Sector, other.Sector)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, " hello world ", normalizeText("Hello, World!"))
	assert.Equal(t, " ", normalizeText("..."))
	assert.True(t, containsKeyword(normalizeText("the UK-based group"), "uk"))
	assert.False(t, containsKeyword(normalizeText("business as usual"), "us"))
}
