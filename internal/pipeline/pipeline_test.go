package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/dealbrief/internal/model"
	"github.com/avolkov/dealbrief/internal/segment"
)

const sampleDigest = `Technology

1. Adarga raises growth round
Adarga, the London-based defence AI startup, raised new funding at a valuation of GBP 6m.
* Backed by existing investors

Financial Services

2. Acme Group completes acquisition of Widget Bank
Acme Group has completed the acquisition of Widget Bank for an enterprise value of EUR 900 million, it reportedly said.
Source: Market wire
`

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(model.DefaultConfig(), nil, nil)
}

func processSample(t *testing.T) *model.DigestReport {
	t.Helper()
	report, err := newTestPipeline(t).Process(context.Background(), sampleDigest, "sample.txt", ProcessOptions{})
	require.NoError(t, err)
	return report
}

func TestProcessOneRecordPerDealStart(t *testing.T) {
	report := processSample(t)

	require.Len(t, report.Deals, segment.CountDealStarts(sampleDigest))
	assert.Equal(t, "1", report.Deals[0].ID)
	assert.Equal(t, "2", report.Deals[1].ID)
	assert.Equal(t, "Technology", report.Deals[0].Section)
	assert.Equal(t, "Financial Services", report.Deals[1].Section)
	assert.NotEmpty(t, report.ContentHash)
}

func TestProcessSectionFallbackSector(t *testing.T) {
	report := processSample(t)

	// Keyword evidence for the first deal is thin, so the section heading
	// supplies the sector.
	first := report.Deals[0]
	assert.Equal(t, "Technology", first.Sector)
	assert.InDelta(t, 0.9, first.SectorConfidence, 1e-9)
	assert.Equal(t, "UK", first.PrimaryGeography)
}

func TestProcessExtractsEnterpriseValue(t *testing.T) {
	report := processSample(t)

	second := report.Deals[1]
	require.NotNil(t, second.Financial.EnterpriseValue)
	assert.Equal(t, 900.0, *second.Financial.EnterpriseValue)
	assert.Equal(t, "EUR", second.Financial.Currency)
	assert.Equal(t, "Large Cap ($300M-$1B)", second.SizeCategory)
	assert.Equal(t, "EUR 900M", second.ValueDisplay)

	// "completed" outranks the trailing "reportedly".
	assert.Equal(t, "Confirmed", second.ConfidenceGrade)
}

func TestProcessScoresWithinBounds(t *testing.T) {
	report := processSample(t)

	for _, d := range report.Deals {
		assert.GreaterOrEqual(t, d.ConfidenceScore, 0.0, d.ID)
		assert.LessOrEqual(t, d.ConfidenceScore, 1.0, d.ID)
		assert.GreaterOrEqual(t, d.Risk.OverallScore, 0.0, d.ID)
		assert.LessOrEqual(t, d.Risk.OverallScore, 1.0, d.ID)
		assert.GreaterOrEqual(t, d.SectorConfidence, 0.0, d.ID)
		assert.LessOrEqual(t, d.SectorConfidence, 1.0, d.ID)
		assert.NotEmpty(t, d.Risk.Level, d.ID)
		assert.NotEmpty(t, d.Rationale.Primary, d.ID)
	}
}

func TestProcessDeterministic(t *testing.T) {
	a := processSample(t)
	b := processSample(t)

	assert.Equal(t, a.ContentHash, b.ContentHash)
	require.Equal(t, len(a.Deals), len(b.Deals))
	for i := range a.Deals {
		assert.Equal(t, a.Deals[i].IntelligenceID, b.Deals[i].IntelligenceID)
		assert.True(t, strings.HasPrefix(a.Deals[i].IntelligenceID, "INT-"+a.Deals[i].ID+"-"),
			"unexpected id format: %s", a.Deals[i].IntelligenceID)
	}
}

func TestProcessWithCategoryFilter(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.AllowedCategories = []string{"Technology"}
	p := New(cfg, nil, nil)

	report, err := p.Process(context.Background(), sampleDigest, "sample.txt", ProcessOptions{ApplyFilter: true})
	require.NoError(t, err)

	require.NotNil(t, report.Filter)
	assert.Equal(t, 2, report.Filter.TotalSections)
	assert.Equal(t, 1, report.Filter.AllowedSections)
	assert.False(t, report.Filter.NoAllowedCategories)

	require.Len(t, report.Deals, 1)
	assert.Equal(t, "1", report.Deals[0].ID)
}

func TestProcessEmptyDigest(t *testing.T) {
	_, err := newTestPipeline(t).Process(context.Background(), "   \n\n ", "empty.txt", ProcessOptions{})
	assert.Error(t, err)
}

func TestProcessAnalytics(t *testing.T) {
	report := processSample(t)

	a := report.Analytics
	assert.Equal(t, 2, a.TotalDeals)
	assert.Equal(t, 2, a.DealsWithValue)
	assert.Equal(t, 1, a.SectorBreakdown["Technology"])
	assert.Equal(t, 1, a.GeoBreakdown["UK"])
	assert.Equal(t, 1, a.CurrencyBreakdown["EUR"])
	assert.NotEmpty(t, a.TopSector)
}

func TestValueDisplayFallsBackToMetadata(t *testing.T) {
	got := valueDisplay(model.FinancialData{}, map[string]string{"size": "EUR 50m approx"})
	assert.Equal(t, "EUR 50m approx", got)

	got = valueDisplay(model.FinancialData{}, nil)
	assert.Equal(t, "Value TBD", got)
}

func TestApplyRecordFilter(t *testing.T) {
	v1, v2 := 500.0, 20.0
	deals := []model.DealRecord{
		{ID: "1", Sector: "Technology", PrimaryGeography: "UK",
			Financial: model.FinancialData{TransactionValue: &v1}},
		{ID: "2", Sector: "Healthcare", PrimaryGeography: "Germany", AllGeographies: []string{"Germany", "Europe"},
			Financial: model.FinancialData{TransactionValue: &v2}},
		{ID: "3", Sector: "Technology", PrimaryGeography: "USA"},
	}

	kept := ApplyRecordFilter(deals, RecordFilter{Sector: "tech"})
	require.Len(t, kept, 2)
	assert.Equal(t, "1", kept[0].ID)
	assert.Equal(t, "3", kept[1].ID)

	kept = ApplyRecordFilter(deals, RecordFilter{Geography: "europe"})
	require.Len(t, kept, 1)
	assert.Equal(t, "2", kept[0].ID)

	kept = ApplyRecordFilter(deals, RecordFilter{MinValue: 100})
	require.Len(t, kept, 1)
	assert.Equal(t, "1", kept[0].ID)

	kept = ApplyRecordFilter(deals, RecordFilter{})
	assert.Len(t, kept, 3)
}

func TestFilterRecordsRecomputesAnalytics(t *testing.T) {
	report := processSample(t)
	FilterRecords(report, RecordFilter{Sector: "Technology"})

	require.Len(t, report.Deals, 1)
	assert.Equal(t, 1, report.Analytics.TotalDeals)
	assert.Equal(t, "Technology", report.Analytics.TopSector)
}
