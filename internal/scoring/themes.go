package scoring

import (
	"sort"

	"github.com/sells-group/callqa-cli/internal/model"
)

// ThemeStats computes batch-level frequency analytics per canonical theme:
// how many items hit it, what share of the batch that is, and which agents
// are affected. Severity is High above HighFreqPct, Medium above
// MediumFreqPct, Low otherwise. Output is sorted by descending miss count,
// ties broken by theme name for determinism.
func (c Config) ThemeStats(results []model.CompiledResult) []model.ThemeStat {
	if len(results) == 0 {
		return nil
	}

	counts := make(map[string]int)
	agents := make(map[string]map[string]bool)
	for _, r := range results {
		for _, theme := range r.Themes {
			counts[theme]++
			if agents[theme] == nil {
				agents[theme] = make(map[string]bool)
			}
			if r.AgentID != "" {
				agents[theme][r.AgentID] = true
			}
		}
	}

	total := float64(len(results))
	stats := make([]model.ThemeStat, 0, len(counts))
	for theme, n := range counts {
		pct := float64(n) / total * 100

		severity := "Low"
		switch {
		case pct > c.HighFreqPct:
			severity = "High"
		case pct > c.MediumFreqPct:
			severity = "Medium"
		}

		affected := make([]string, 0, len(agents[theme]))
		for id := range agents[theme] {
			affected = append(affected, id)
		}
		sort.Strings(affected)

		stats = append(stats, model.ThemeStat{
			Theme:          theme,
			MissCount:      n,
			MissPercentage: pct,
			Severity:       severity,
			AffectedAgents: affected,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MissCount != stats[j].MissCount {
			return stats[i].MissCount > stats[j].MissCount
		}
		return stats[i].Theme < stats[j].Theme
	})
	return stats
}
