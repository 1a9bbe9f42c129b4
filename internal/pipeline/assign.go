package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/model"
	"github.com/sells-group/callqa-cli/internal/resilience"
)

// assignThemes maps each item's findings onto the canonical theme set.
// Items with zero findings are short-circuited with the sentinel reasoning
// and never reach the model. Echoed theme names that are not in the
// canonical set are dropped after a case-insensitive match attempt.
func (p *Pipeline) assignThemes(ctx context.Context, st *State) error {
	canonical := make(map[string]string, len(st.Themes))
	for _, t := range st.Themes {
		canonical[foldTheme(t.Name)] = t.Name
	}

	for _, item := range st.Items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, degraded := st.Errors[item.ID]; degraded {
			continue
		}

		findings := st.Findings[item.ID]
		if len(findings) == 0 {
			st.Assignments[item.ID] = model.ThemeAssignment{
				ItemID:    item.ID,
				Themes:    []string{},
				Reasoning: NoFindingsReasoning,
			}
			continue
		}

		res, err := p.invoker.Invoke(ctx, llm.Request{
			System: analystSystem,
			Prompt: assignmentPrompt(item, findings, st.Themes),
		})
		if err != nil {
			if resilience.IsFatal(err) {
				return err
			}
			p.log.Warn("theme assignment degraded",
				zap.String("run_id", st.RunID),
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			st.Errors[item.ID] = "theme assignment failed: " + err.Error()
			continue
		}
		st.Usage.Add(res.Usage)

		var payload struct {
			Themes    []string `json:"themes"`
			Reasoning string   `json:"reasoning"`
		}
		if err := res.Decode(&payload); err != nil {
			st.Errors[item.ID] = "theme assignment returned unusable payload"
			continue
		}

		matched := make([]string, 0, len(payload.Themes))
		seen := make(map[string]bool)
		for _, raw := range payload.Themes {
			name, ok := canonical[foldTheme(checklist.CleanThemeName(raw))]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			matched = append(matched, name)
		}
		if dropped := len(payload.Themes) - len(matched); dropped > 0 {
			p.log.Debug("dropped non-canonical theme echoes",
				zap.String("item_id", item.ID),
				zap.Int("dropped", dropped),
			)
		}

		st.Assignments[item.ID] = model.ThemeAssignment{
			ItemID:    item.ID,
			Themes:    matched,
			Reasoning: checklist.CleanOutputText(payload.Reasoning),
		}
	}
	return nil
}
