package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/dealbrief/internal/model"
)

func TestRenderJSONRoundTrip(t *testing.T) {
	report := processSample(t)
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, NewRenderer(true).RenderJSON(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded model.DigestReport
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, report.ContentHash, loaded.ContentHash)
	require.Len(t, loaded.Deals, len(report.Deals))
	assert.Equal(t, report.Deals[0].IntelligenceID, loaded.Deals[0].IntelligenceID)
}

func TestRenderMarkdownContainsDeals(t *testing.T) {
	report := processSample(t)
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, NewRenderer(true).RenderMarkdown(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# M&A Deal Brief")
	assert.Contains(t, md, "Adarga raises growth round")
	assert.Contains(t, md, "EUR 900M")
	assert.Contains(t, md, "## Analytics")
	assert.Contains(t, md, "Generated by dealbrief")
}

func TestRenderMarkdownWithoutFooter(t *testing.T) {
	report := processSample(t)
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, NewRenderer(false).RenderMarkdown(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Generated by dealbrief")
}

func TestRenderCSV(t *testing.T) {
	report := processSample(t)
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, NewRenderer(true).RenderCSV(report, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+len(report.Deals))
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "900.0", rows[2][7])
	assert.Equal(t, "EUR", rows[2][8])
}

func TestWriteSummary(t *testing.T) {
	report := processSample(t)

	var buf bytes.Buffer
	NewRenderer(true).WriteSummary(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "2 deals")
	assert.Contains(t, out, "Adarga raises growth round")
	assert.Contains(t, out, "Top sector:")
}
