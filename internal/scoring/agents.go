package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/sells-group/callqa-cli/internal/model"
)

// RankAgents aggregates compiled results per agent and ranks them by
// composite score. Compliance rate is the percentage of an agent's items
// with zero findings; composite = compliance_rate - avg_findings*weight.
// The sort is stable so equal composites keep first-appearance order, and
// ranks are 1-based.
func (c Config) RankAgents(results []model.CompiledResult) []model.AgentPerformance {
	type acc struct {
		perf  model.AgentPerformance
		clean int
	}

	var order []string
	byAgent := make(map[string]*acc)
	for _, r := range results {
		id := r.AgentID
		if id == "" {
			id = "unknown"
		}
		a, ok := byAgent[id]
		if !ok {
			a = &acc{perf: model.AgentPerformance{AgentID: id, AgentName: r.AgentName}}
			byAgent[id] = a
			order = append(order, id)
		}
		a.perf.TotalItems++
		a.perf.TotalFindings += r.FindingCount
		if r.FindingCount == 0 && !r.Degraded() {
			a.clean++
		}
	}

	ranked := make([]model.AgentPerformance, 0, len(order))
	for _, id := range order {
		a := byAgent[id]
		items := float64(a.perf.TotalItems)
		a.perf.AvgFindings = float64(a.perf.TotalFindings) / items
		a.perf.ComplianceRate = float64(a.clean) / items * 100
		a.perf.CompositeScore = a.perf.ComplianceRate - a.perf.AvgFindings*c.FindingWeight
		a.perf.Grade = c.Grade(a.perf.CompositeScore)
		ranked = append(ranked, a.perf)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Grade maps a composite score to a letter grade.
func (c Config) Grade(composite float64) string {
	for _, g := range c.Grades {
		if composite >= g.Min {
			return g.Grade
		}
	}
	return c.FallbackGrade
}

// Summarize computes headline batch numbers from the compiled results and
// canonical theme set.
func Summarize(results []model.CompiledResult, themes []model.Theme, now time.Time) model.BatchSummary {
	s := model.BatchSummary{
		TotalItems:   len(results),
		ThemeCount:   len(themes),
		AnalysisDate: now.UTC().Format(time.RFC3339),
	}
	if len(results) == 0 {
		return s
	}

	var scoreSum int
	for _, r := range results {
		s.TotalFindings += r.FindingCount
		scoreSum += r.SeverityScore
	}
	n := float64(len(results))
	s.AvgFindings = float64(s.TotalFindings) / n
	s.AvgSeverityScore = float64(scoreSum) / n
	return s
}

// Suggestions produces coaching focus lines from theme frequency stats:
// one line per High or Medium severity theme, most frequent first.
func Suggestions(stats []model.ThemeStat) []string {
	var out []string
	for _, st := range stats {
		switch st.Severity {
		case "High":
			out = append(out, fmt.Sprintf(
				"Priority: %q affects %.0f%% of calls - schedule team-wide retraining", st.Theme, st.MissPercentage))
		case "Medium":
			out = append(out, fmt.Sprintf(
				"Monitor: %q affects %.0f%% of calls - review in next coaching cycle", st.Theme, st.MissPercentage))
		}
	}
	return out
}
