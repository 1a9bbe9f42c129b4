// Package ingest loads transcript batches from tabular files (CSV, XLSX)
// into analysis items. Column headers are matched case-insensitively
// against known aliases so exports from different telephony systems load
// without manual renaming.
package ingest

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/callqa-cli/internal/model"
)

// Header aliases, lowercased. The first matching column wins.
var (
	idAliases         = []string{"transcript_id", "transcriptid", "call_id", "id"}
	agentIDAliases    = []string{"agent_id", "agentid", "rep_id"}
	agentNameAliases  = []string{"agent_name", "agentname", "agent", "rep_name"}
	transcriptAliases = []string{"transcript_call", "transcript", "call_transcript", "transcript_text", "text"}
)

// Load reads a batch file by extension: .xlsx via the spreadsheet reader,
// anything else as CSV.
func Load(path string) ([]model.AnalysisItem, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows)
}

type columnMap struct {
	id, agentID, agentName, transcript int
}

// itemsFromRows interprets the first row as a header and maps the rest to
// items. Rows with an empty transcript cell are skipped. Missing ID and
// agent columns get synthesized T<n> / A<n> values so downstream joins
// always have keys.
func itemsFromRows(rows [][]string) ([]model.AnalysisItem, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: file has no rows")
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var items []model.AnalysisItem
	for _, row := range rows[1:] {
		transcript := strings.TrimSpace(cell(row, cols.transcript))
		if transcript == "" {
			continue
		}

		n := len(items) + 1
		item := model.AnalysisItem{
			ID:         strings.TrimSpace(cell(row, cols.id)),
			AgentID:    strings.TrimSpace(cell(row, cols.agentID)),
			AgentName:  strings.TrimSpace(cell(row, cols.agentName)),
			Transcript: transcript,
		}
		if item.ID == "" {
			item.ID = "T" + strconv.Itoa(n)
		}
		if item.AgentID == "" {
			item.AgentID = "A" + strconv.Itoa(n)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, eris.New("ingest: no rows with a transcript found")
	}
	return items, nil
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{
		id:         findColumn(header, idAliases),
		agentID:    findColumn(header, agentIDAliases),
		agentName:  findColumn(header, agentNameAliases),
		transcript: findColumn(header, transcriptAliases),
	}
	if cols.transcript < 0 {
		return cols, eris.Errorf("ingest: no transcript column found (looked for %s)", strings.Join(transcriptAliases, ", "))
	}
	return cols, nil
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
