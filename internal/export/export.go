// Package export writes batch results to JSON and CSV artifacts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/callqa-cli/internal/model"
)

// WriteJSON writes the full result envelope as indented JSON.
func WriteJSON(path string, res model.BatchResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal result")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrap(err, "export: write json")
	}
	return nil
}

var csvHeader = []string{
	"transcript_id", "agent_id", "agent_name",
	"finding_count", "findings", "mistake_themes", "reasoning",
	"root_cause", "improvements", "severity_score", "severity_rating",
	"analysis_error",
}

// WriteCSV writes one row per compiled result. List-valued fields are
// joined with "; " so the file stays usable in a spreadsheet.
func WriteCSV(path string, results []model.CompiledResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, r := range results {
		row := []string{
			r.ItemID, r.AgentID, r.AgentName,
			strconv.Itoa(r.FindingCount),
			strings.Join(r.Findings, "; "),
			strings.Join(r.Themes, "; "),
			r.Reasoning,
			r.RootCause, r.Improvements,
			strconv.Itoa(r.SeverityScore), r.Rating,
			r.AnalysisError,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// WriteRankingsCSV writes the agent leaderboard.
func WriteRankingsCSV(path string, agents []model.AgentPerformance) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create rankings csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"rank", "agent_id", "agent_name", "total_items", "total_findings", "avg_findings", "compliance_rate", "composite_score", "grade"}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, a := range agents {
		row := []string{
			strconv.Itoa(a.Rank), a.AgentID, a.AgentName,
			strconv.Itoa(a.TotalItems), strconv.Itoa(a.TotalFindings),
			strconv.FormatFloat(a.AvgFindings, 'f', 2, 64),
			strconv.FormatFloat(a.ComplianceRate, 'f', 1, 64),
			strconv.FormatFloat(a.CompositeScore, 'f', 1, 64),
			a.Grade,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}
