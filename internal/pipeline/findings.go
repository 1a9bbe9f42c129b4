package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/resilience"
)

// extractFindings runs one adapter call per item and records the resulting
// finding descriptions. An item whose call fails after retry exhaustion is
// degraded in place; only authentication failures abort the stage.
func (p *Pipeline) extractFindings(ctx context.Context, st *State) error {
	for _, item := range st.Items {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := p.invoker.Invoke(ctx, llm.Request{
			System: analystSystem,
			Prompt: extractionPrompt(st.ChecklistText, item),
		})
		if err != nil {
			if resilience.IsFatal(err) {
				return err
			}
			p.log.Warn("finding extraction degraded",
				zap.String("run_id", st.RunID),
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			st.Errors[item.ID] = "finding extraction failed: " + err.Error()
			continue
		}
		st.Usage.Add(res.Usage)

		var payload struct {
			Findings []string `json:"findings"`
		}
		if err := res.Decode(&payload); err != nil {
			st.Errors[item.ID] = "finding extraction returned unusable payload"
			continue
		}

		cleaned := make([]string, 0, len(payload.Findings))
		for _, f := range payload.Findings {
			if f = checklist.CleanOutputText(f); f != "" {
				cleaned = append(cleaned, f)
			}
		}
		st.Findings[item.ID] = cleaned

		p.log.Debug("findings extracted",
			zap.String("item_id", item.ID),
			zap.Int("count", len(cleaned)),
			zap.Int("attempts", res.Attempts),
		)
	}
	return nil
}
