package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const digestFixture = `Automotive

1. Supplier buys drivetrain maker
* Family owners exit

Biotechnology

2. Gene therapy startup raises round
* Series C round

Computer software

3. ERP vendor merges with rival
* All-share merger

Deal Details

1. Supplier buys drivetrain maker
The supplier agreed to buy the drivetrain maker for an undisclosed sum of money.
Press release: supplier announces completion of the purchase

2. Gene therapy startup raises round
The startup raised a large round from crossover investors this quarter again.
Press release: startup announces oversubscribed financing round
`

func TestApplyKeepsAllowedSections(t *testing.T) {
	f := New([]string{"Automotive", "Computer software"})
	res := f.Apply(digestFixture)

	assert.Contains(t, res.Output, "1. Supplier buys drivetrain maker")
	assert.Contains(t, res.Output, "3. ERP vendor merges with rival")
	assert.NotContains(t, res.Output, "Gene therapy")
	assert.NotContains(t, res.Output, "Biotechnology")
}

func TestApplyReportCounts(t *testing.T) {
	f := New([]string{"Automotive", "Computer software"})
	res := f.Apply(digestFixture)

	r := res.Report
	assert.Equal(t, 4, r.TotalSections)
	assert.Equal(t, 2, r.AllowedSections)
	assert.Equal(t, 2, r.FilteredSections)
	assert.Equal(t, 5, r.TotalItems)
	assert.Equal(t, 3, r.AllowedItems)
	assert.ElementsMatch(t, []string{"1", "3", "1"}, r.AllowedIDs)
	assert.Contains(t, r.FilteredLabels, "Biotechnology")
	assert.False(t, r.NoAllowedCategories)
}

func TestApplyKeepsDetailedBlocksOfAllowedIDs(t *testing.T) {
	// "Deal Details" is not on the allow-list, but item 1's detailed
	// write-up must survive because id 1 was allowed up front.
	f := New([]string{"Automotive"})
	res := f.Apply(digestFixture)

	assert.Contains(t, res.Output, "agreed to buy the drivetrain maker")
	assert.NotContains(t, res.Output, "crossover investors")
}

func TestApplyPressLineAccounting(t *testing.T) {
	f := New([]string{"Automotive"})
	res := f.Apply(digestFixture)

	assert.Equal(t, 2, res.Report.PressLinesBefore)
	assert.Equal(t, 1, res.Report.PressLinesAfter)
	require.Len(t, res.Report.ExamplePressLines, 1)
	assert.Contains(t, res.Report.ExamplePressLines[0], "supplier announces")
}

func TestApplyNoAllowedCategories(t *testing.T) {
	f := New([]string{"Telecoms"})
	res := f.Apply(digestFixture)

	assert.True(t, res.Report.NoAllowedCategories)
	assert.Equal(t, Placeholder, res.Output)
	assert.Equal(t, 0, res.Report.AllowedItems)
}

func TestApplyLabelMatchingIgnoresCaseAndPunctuation(t *testing.T) {
	f := New([]string{"consumer retail"})
	text := "Consumer: Retail\n\n1. Grocery chain changes hands\n"
	res := f.Apply(text)

	assert.False(t, res.Report.NoAllowedCategories)
	assert.Contains(t, res.Output, "Grocery chain")
}

func TestApplyCollapsesBlankRuns(t *testing.T) {
	f := New([]string{"Automotive", "Computer software"})
	res := f.Apply(digestFixture)

	assert.NotContains(t, res.Output, "\n\n\n")
	assert.False(t, strings.HasSuffix(res.Output, "\n"))
}

func TestApplyFullAllowListRoundTrips(t *testing.T) {
	// With every section label allowed, filtering removes nothing: the
	// output is the input, up to blank-line normalization.
	f := New([]string{"Automotive", "Biotechnology", "Computer software", "Deal Details"})
	res := f.Apply(digestFixture)

	assert.Equal(t, collapseBlankLines(digestFixture), collapseBlankLines(res.Output))
	assert.Equal(t, res.Report.TotalSections, res.Report.AllowedSections)
	assert.Equal(t, res.Report.TotalItems, res.Report.AllowedItems)
}

// collapseBlankLines squeezes runs of blank lines to one and trims the edges.
func collapseBlankLines(s string) string {
	var out []string
	blank := true
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func TestApplyIdempotent(t *testing.T) {
	f := New([]string{"Automotive", "Computer software"})
	once := f.Apply(digestFixture)
	twice := f.Apply(once.Output)

	assert.Equal(t, once.Output, twice.Output)
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "consumer retail", normalizeLabel("Consumer: Retail"))
	assert.Equal(t, "services other", normalizeLabel("Services (other)"))
	assert.Equal(t, "automotive", normalizeLabel("  Automotive  "))
}
