package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/callqa-cli/internal/model"
)

func sampleResult() model.BatchResult {
	return model.BatchResult{
		RunID:   "run-7",
		Success: true,
		Results: []model.CompiledResult{
			{
				ItemID:        "t1",
				AgentID:       "a1",
				AgentName:     "Dana",
				Findings:      []string{"missed greeting", "no recap"},
				FindingCount:  2,
				Themes:        []string{"Skipped openings"},
				Reasoning:     "Both findings relate to call structure.",
				SeverityScore: 90,
				Rating:        "Excellent",
			},
			{
				ItemID:        "t2",
				AgentID:       "a2",
				Findings:      []string{},
				Themes:        []string{},
				SeverityScore: 100,
				Rating:        "Excellent",
			},
		},
		Themes: []model.Theme{{Name: "Skipped openings", Criticality: model.CriticalityNonCritical}},
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, WriteJSON(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.BatchResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-7", got.RunID)
	require.Len(t, got.Results, 2)
	assert.Equal(t, []string{"missed greeting", "no recap"}, got.Results[0].Findings)
	assert.Equal(t, model.CriticalityNonCritical, got.Themes[0].Criticality)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteCSV(path, sampleResult().Results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	assert.Equal(t, "transcript_id", rows[0][0])
	assert.Equal(t, "t1", rows[1][0])
	assert.Equal(t, "missed greeting; no recap", rows[1][4])
	assert.Equal(t, "100", rows[2][9])
}

func TestWriteRankingsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rankings.csv")
	agents := []model.AgentPerformance{
		{Rank: 1, AgentID: "a1", AgentName: "Dana", TotalItems: 3, ComplianceRate: 100, CompositeScore: 100, Grade: "A"},
		{Rank: 2, AgentID: "a2", AgentName: "Robin", TotalItems: 2, AvgFindings: 1.5, ComplianceRate: 50, CompositeScore: 35, Grade: "F"},
	}
	require.NoError(t, WriteRankingsCSV(path, agents))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "a1", rows[1][1])
	assert.Equal(t, "F", rows[2][8])
}

func TestWriteJSONBadPath(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "missing", "out.json"), sampleResult())
	assert.Error(t, err)
}
