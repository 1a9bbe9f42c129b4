package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/model"
	"github.com/sells-group/callqa-cli/internal/scoring"
)

// DefaultMaxThemes caps the canonical theme set synthesized per batch.
const DefaultMaxThemes = 10

// Options configures a Pipeline.
type Options struct {
	MaxThemes int
	Scoring   scoring.Config
}

// Pipeline runs the analysis stages in a fixed order over a shared state.
// One Pipeline instance serves one batch at a time.
type Pipeline struct {
	invoker llm.Invoker
	opts    Options
	log     *zap.Logger
	now     func() time.Time
}

// New builds a Pipeline around the given model invoker.
func New(invoker llm.Invoker, opts Options, log *zap.Logger) *Pipeline {
	if opts.MaxThemes <= 0 {
		opts.MaxThemes = DefaultMaxThemes
	}
	if opts.Scoring.Buckets == nil {
		opts.Scoring = scoring.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{invoker: invoker, opts: opts, log: log, now: time.Now}
}

type stage struct {
	name string
	run  func(context.Context, *State) error
}

// Run analyzes the batch and returns the result envelope. Per-item stage
// failures degrade individual records; a theme-synthesis failure, an
// authentication failure, or context cancellation fails the whole batch
// with an empty result set. An empty input batch succeeds trivially.
func (p *Pipeline) Run(ctx context.Context, runID string, items []model.AnalysisItem, cl *checklist.Checklist) model.BatchResult {
	if runID == "" {
		runID = uuid.NewString()
	}

	if len(items) == 0 {
		return model.BatchResult{
			RunID:   runID,
			Success: true,
			Results: []model.CompiledResult{},
			Themes:  []model.Theme{},
			Summary: scoring.Summarize(nil, nil, p.now()),
		}
	}

	var checklistText string
	if cl != nil {
		checklistText = cl.PromptText()
	}
	st := newState(runID, items, checklistText)

	stages := []stage{
		{"extract_findings", p.extractFindings},
		{"synthesize_themes", p.synthesizeThemes},
		{"assign_themes", p.assignThemes},
		{"score", p.scoreItems},
		{"root_causes", p.synthesizeRootCauses},
	}

	started := p.now()
	for _, s := range stages {
		stageStart := p.now()
		if err := s.run(ctx, st); err != nil {
			p.log.Error("batch aborted",
				zap.String("run_id", runID),
				zap.String("stage", s.name),
				zap.Error(err),
			)
			return model.BatchResult{
				RunID:   runID,
				Success: false,
				Error:   eris.ToString(eris.Wrapf(err, "stage %s", s.name), false),
				Results: []model.CompiledResult{},
				Themes:  []model.Theme{},
			}
		}
		p.log.Debug("stage complete",
			zap.String("run_id", runID),
			zap.String("stage", s.name),
			zap.Duration("elapsed", p.now().Sub(stageStart)),
		)
	}

	results := p.compile(ctx, st)
	themes := st.Themes
	if themes == nil {
		themes = []model.Theme{}
	}

	res := model.BatchResult{
		RunID:      runID,
		Success:    true,
		Results:    results,
		Themes:     themes,
		ThemeStats: p.opts.Scoring.ThemeStats(results),
		Agents:     p.opts.Scoring.RankAgents(results),
		Summary:    scoring.Summarize(results, themes, p.now()),
	}

	p.log.Info("batch complete",
		zap.String("run_id", runID),
		zap.Int("items", len(items)),
		zap.Int("findings", st.TotalFindings()),
		zap.Int("themes", len(themes)),
		zap.Int64("input_tokens", st.Usage.InputTokens),
		zap.Int64("output_tokens", st.Usage.OutputTokens),
		zap.Duration("elapsed", p.now().Sub(started)),
	)
	return res
}
