package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/callqa-cli/internal/model"
)

func resultWith(itemID, agentID string, themes ...string) model.CompiledResult {
	return model.CompiledResult{ItemID: itemID, AgentID: agentID, Themes: themes}
}

func TestThemeStatsFrequencyAndSeverity(t *testing.T) {
	cfg := DefaultConfig()

	// 10 items: theme A on 4 (40% -> High), theme B on 2 (20% -> Medium),
	// theme C on 1 (10% -> Low).
	results := []model.CompiledResult{
		resultWith("t1", "a1", "A", "B"),
		resultWith("t2", "a1", "A"),
		resultWith("t3", "a2", "A", "C"),
		resultWith("t4", "a2", "A"),
		resultWith("t5", "a3", "B"),
		resultWith("t6", "a3"),
		resultWith("t7", "a3"),
		resultWith("t8", "a1"),
		resultWith("t9", "a2"),
		resultWith("t10", "a3"),
	}

	stats := cfg.ThemeStats(results)
	require.Len(t, stats, 3)

	assert.Equal(t, "A", stats[0].Theme)
	assert.Equal(t, 4, stats[0].MissCount)
	assert.InDelta(t, 40.0, stats[0].MissPercentage, 0.001)
	assert.Equal(t, "High", stats[0].Severity)
	assert.Equal(t, []string{"a1", "a2"}, stats[0].AffectedAgents)

	assert.Equal(t, "B", stats[1].Theme)
	assert.Equal(t, "Medium", stats[1].Severity)

	assert.Equal(t, "C", stats[2].Theme)
	assert.Equal(t, "Low", stats[2].Severity)
}

func TestThemeStatsDeterministicTieOrder(t *testing.T) {
	cfg := DefaultConfig()
	results := []model.CompiledResult{
		resultWith("t1", "a1", "Zebra", "Apple"),
	}

	stats := cfg.ThemeStats(results)
	require.Len(t, stats, 2)
	assert.Equal(t, "Apple", stats[0].Theme)
	assert.Equal(t, "Zebra", stats[1].Theme)
}

func TestThemeStatsEmpty(t *testing.T) {
	assert.Nil(t, DefaultConfig().ThemeStats(nil))
}

func TestSuggestionsFromStats(t *testing.T) {
	stats := []model.ThemeStat{
		{Theme: "Missed verification", MissPercentage: 45, Severity: "High"},
		{Theme: "No recap", MissPercentage: 20, Severity: "Medium"},
		{Theme: "Minor phrasing", MissPercentage: 5, Severity: "Low"},
	}

	got := Suggestions(stats)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Missed verification")
	assert.Contains(t, got[0], "retraining")
	assert.Contains(t, got[1], "No recap")
}
