package pipeline

import (
	"context"

	"github.com/sells-group/callqa-cli/internal/model"
)

// scoreItems applies the deterministic scoring law to every non-degraded
// item. No model calls happen here.
func (p *Pipeline) scoreItems(_ context.Context, st *State) error {
	for _, item := range st.Items {
		if _, degraded := st.Errors[item.ID]; degraded {
			continue
		}

		score, rating := p.opts.Scoring.ScoreItem(st.Assignments[item.ID].Themes, st.Themes)
		rec := st.Severity[item.ID]
		rec.ItemID = item.ID
		rec.SeverityScore = score
		rec.Rating = rating
		st.Severity[item.ID] = rec
	}
	return nil
}

// compile joins all stage outputs into one record per input item, in input
// order. Degraded items keep their identity fields and carry the error.
func (p *Pipeline) compile(_ context.Context, st *State) []model.CompiledResult {
	results := make([]model.CompiledResult, 0, len(st.Items))
	for _, item := range st.Items {
		r := model.CompiledResult{
			ItemID:     item.ID,
			AgentID:    item.AgentID,
			AgentName:  item.AgentName,
			Transcript: item.Transcript,
			Findings:   []string{},
			Themes:     []string{},
		}

		if msg, degraded := st.Errors[item.ID]; degraded {
			r.AnalysisError = msg
			results = append(results, r)
			continue
		}

		if f := st.Findings[item.ID]; f != nil {
			r.Findings = f
		}
		r.FindingCount = len(r.Findings)

		asg := st.Assignments[item.ID]
		if asg.Themes != nil {
			r.Themes = asg.Themes
		}
		r.Reasoning = asg.Reasoning

		rec := st.Severity[item.ID]
		r.RootCause = rec.RootCause
		r.Improvements = rec.Improvements
		r.SeverityScore = rec.SeverityScore
		r.Rating = rec.Rating

		results = append(results, r)
	}
	return results
}
