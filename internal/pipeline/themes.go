package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/model"
)

// foldTheme builds a case-insensitive comparison key for a theme name. A
// fresh Caser per call because cases.Caser is stateful and batches may run
// concurrently under serve.
func foldTheme(name string) string {
	return cases.Fold().String(name)
}

// synthesizeThemes makes the single corpus-wide call that turns the flat
// finding list into at most MaxThemes canonical themes. A batch with no
// findings anywhere skips the call and leaves the theme set empty. Any
// failure here is a corpus-stage failure: the whole batch aborts, because
// every downstream stage depends on the canonical set.
func (p *Pipeline) synthesizeThemes(ctx context.Context, st *State) error {
	findings := p.collectFindings(st)
	if len(findings) == 0 {
		p.log.Info("no findings in batch, skipping theme synthesis",
			zap.String("run_id", st.RunID))
		return nil
	}

	res, err := p.invoker.Invoke(ctx, llm.Request{
		System: analystSystem,
		Prompt: synthesisPrompt(findings, p.opts.MaxThemes),
	})
	if err != nil {
		return eris.Wrap(err, "theme synthesis")
	}
	st.Usage.Add(res.Usage)

	var payload struct {
		Themes []struct {
			Name        string `json:"name"`
			Criticality string `json:"criticality"`
		} `json:"themes"`
	}
	if err := res.Decode(&payload); err != nil {
		return eris.Wrap(err, "theme synthesis")
	}

	seen := make(map[string]bool)
	for _, raw := range payload.Themes {
		name := checklist.CleanThemeName(raw.Name)
		if name == "" {
			continue
		}
		key := foldTheme(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		crit := model.CriticalityNonCritical
		if raw.Criticality == string(model.CriticalityCritical) {
			crit = model.CriticalityCritical
		}
		st.Themes = append(st.Themes, model.Theme{Name: name, Criticality: crit})
		if len(st.Themes) >= p.opts.MaxThemes {
			break
		}
	}

	if len(st.Themes) == 0 {
		return eris.New("theme synthesis: model returned no usable themes")
	}

	p.log.Info("themes synthesized",
		zap.String("run_id", st.RunID),
		zap.Int("theme_count", len(st.Themes)),
		zap.Int("finding_count", len(findings)),
	)
	return nil
}

// collectFindings flattens the per-item finding lists in item order.
func (p *Pipeline) collectFindings(st *State) []model.Finding {
	var out []model.Finding
	for _, item := range st.Items {
		for _, desc := range st.Findings[item.ID] {
			out = append(out, model.Finding{ItemID: item.ID, Description: desc})
		}
	}
	return out
}
