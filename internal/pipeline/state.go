// Package pipeline orchestrates the multi-stage transcript compliance
// analysis: per-item finding extraction, corpus-wide theme synthesis,
// per-item theme assignment, root-cause synthesis, deterministic scoring,
// and final compilation. Per-item failures degrade the affected record;
// corpus-stage failures abort the batch.
package pipeline

import (
	"github.com/sells-group/callqa-cli/internal/model"
	"github.com/sells-group/callqa-cli/pkg/anthropic"
)

// NoFindingsReasoning is the fixed reasoning recorded for items whose
// extraction produced zero findings. These items never reach the model in
// the assignment or root-cause stages.
const NoFindingsReasoning = "No compliance issues identified - excellent adherence"

// NoFindingsImprovements is the coaching text recorded for clean items.
const NoFindingsImprovements = "Maintain current practices - no corrective action needed"

// State is the shared working set the stages read and write. Items and
// their order are fixed at construction; stages only add keyed outputs.
type State struct {
	RunID         string
	Items         []model.AnalysisItem
	ChecklistText string

	// Keyed by item ID. A missing key in Findings means extraction has not
	// run or degraded for that item; Errors records why.
	Findings    map[string][]string
	Assignments map[string]model.ThemeAssignment
	Severity    map[string]model.SeverityRecord
	Errors      map[string]string

	// Themes is the canonical corpus-wide set. Empty when no findings
	// existed anywhere in the batch.
	Themes []model.Theme

	Usage anthropic.TokenUsage
}

func newState(runID string, items []model.AnalysisItem, checklistText string) *State {
	return &State{
		RunID:         runID,
		Items:         items,
		ChecklistText: checklistText,
		Findings:      make(map[string][]string, len(items)),
		Assignments:   make(map[string]model.ThemeAssignment, len(items)),
		Severity:      make(map[string]model.SeverityRecord, len(items)),
		Errors:        make(map[string]string),
	}
}

// TotalFindings counts extracted findings across the whole batch.
func (s *State) TotalFindings() int {
	n := 0
	for _, f := range s.Findings {
		n += len(f)
	}
	return n
}
