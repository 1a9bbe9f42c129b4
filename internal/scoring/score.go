package scoring

import "github.com/sells-group/callqa-cli/internal/model"

// SeverityScore applies the deduction law: start at 100, subtract
// CriticalDelta per critical occurrence and NonCriticalDelta per
// non-critical occurrence, clamp to [0, 100].
func (c Config) SeverityScore(criticalCount, nonCriticalCount int) int {
	score := 100 - c.CriticalDelta*criticalCount - c.NonCriticalDelta*nonCriticalCount
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Rating maps a severity score onto the configured bucket labels.
func (c Config) Rating(score int) string {
	for _, b := range c.Buckets {
		if score >= b.Min {
			return b.Label
		}
	}
	if n := len(c.Buckets); n > 0 {
		return c.Buckets[n-1].Label
	}
	return ""
}

// CountByCriticality splits an item's assigned themes into critical and
// non-critical occurrence counts using the canonical theme set. Assigned
// themes not present in the set default to non-critical.
func CountByCriticality(assigned []string, themes []model.Theme) (critical, nonCritical int) {
	crit := make(map[string]bool, len(themes))
	for _, t := range themes {
		crit[t.Name] = t.Criticality == model.CriticalityCritical
	}
	for _, name := range assigned {
		if crit[name] {
			critical++
		} else {
			nonCritical++
		}
	}
	return critical, nonCritical
}

// ScoreItem computes the severity score and rating for one item from its
// theme assignment and the canonical theme set.
func (c Config) ScoreItem(assigned []string, themes []model.Theme) (int, string) {
	critical, nonCritical := CountByCriticality(assigned, themes)
	score := c.SeverityScore(critical, nonCritical)
	return score, c.Rating(score)
}
