package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/resilience"
)

// synthesizeRootCauses asks the model for a root cause and coaching
// guidance per item with findings. This stage is advisory: a failure here
// leaves the record's root-cause fields empty without degrading it, since
// findings, themes, and scores are already complete.
func (p *Pipeline) synthesizeRootCauses(ctx context.Context, st *State) error {
	for _, item := range st.Items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, degraded := st.Errors[item.ID]; degraded {
			continue
		}

		findings := st.Findings[item.ID]
		if len(findings) == 0 {
			rec := st.Severity[item.ID]
			rec.ItemID = item.ID
			rec.Improvements = NoFindingsImprovements
			st.Severity[item.ID] = rec
			continue
		}

		res, err := p.invoker.Invoke(ctx, llm.Request{
			System: analystSystem,
			Prompt: rootCausePrompt(item, findings, st.Assignments[item.ID].Themes),
		})
		if err != nil {
			if resilience.IsFatal(err) {
				return err
			}
			p.log.Warn("root cause synthesis skipped",
				zap.String("run_id", st.RunID),
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			continue
		}
		st.Usage.Add(res.Usage)

		var payload struct {
			RootCause    string `json:"root_cause"`
			Improvements string `json:"improvements"`
		}
		if err := res.Decode(&payload); err != nil {
			continue
		}

		rec := st.Severity[item.ID]
		rec.ItemID = item.ID
		rec.RootCause = checklist.CleanOutputText(payload.RootCause)
		rec.Improvements = checklist.CleanOutputText(payload.Improvements)
		st.Severity[item.ID] = rec
	}
	return nil
}
