package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/callqa-cli/internal/model"
)

func TestSeverityScoreLaw(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		critical    int
		nonCritical int
		want        int
	}{
		{"clean call", 0, 0, 100},
		{"one non-critical", 0, 1, 95},
		{"one critical", 1, 0, 85},
		{"mixed", 2, 3, 55},
		{"clamped at zero", 7, 0, 0},
		{"exactly zero", 6, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.SeverityScore(tt.critical, tt.nonCritical))
		})
	}
}

func TestRatingBuckets(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Excellent", cfg.Rating(100))
	assert.Equal(t, "Excellent", cfg.Rating(90))
	assert.Equal(t, "Good", cfg.Rating(89))
	assert.Equal(t, "Good", cfg.Rating(75))
	assert.Equal(t, "Fair", cfg.Rating(74))
	assert.Equal(t, "Fair", cfg.Rating(60))
	assert.Equal(t, "Poor", cfg.Rating(59))
	assert.Equal(t, "Poor", cfg.Rating(40))
	assert.Equal(t, "Critical", cfg.Rating(39))
	assert.Equal(t, "Critical", cfg.Rating(0))
}

func TestTriageScheme(t *testing.T) {
	cfg := DefaultConfig().WithScheme("triage")

	assert.Equal(t, "Low", cfg.Rating(100))
	assert.Equal(t, "Low", cfg.Rating(81))
	assert.Equal(t, "Medium", cfg.Rating(80))
	assert.Equal(t, "Medium", cfg.Rating(50))
	assert.Equal(t, "High", cfg.Rating(49))
	assert.Equal(t, "High", cfg.Rating(0))

	// Unknown scheme names keep the standard buckets.
	assert.Equal(t, "Excellent", DefaultConfig().WithScheme("bogus").Rating(95))
}

func TestCountByCriticality(t *testing.T) {
	themes := []model.Theme{
		{Name: "Missed identity verification", Criticality: model.CriticalityCritical},
		{Name: "Informal greeting", Criticality: model.CriticalityNonCritical},
	}

	crit, nonCrit := CountByCriticality(
		[]string{"Missed identity verification", "Informal greeting", "Unknown theme"},
		themes,
	)
	assert.Equal(t, 1, crit)
	// Unknown themes default to non-critical.
	assert.Equal(t, 2, nonCrit)
}

func TestScoreItem(t *testing.T) {
	cfg := DefaultConfig()
	themes := []model.Theme{
		{Name: "Skipped disclosure statement", Criticality: model.CriticalityCritical},
		{Name: "No call recap", Criticality: model.CriticalityNonCritical},
	}

	score, rating := cfg.ScoreItem([]string{"Skipped disclosure statement", "No call recap"}, themes)
	assert.Equal(t, 80, score)
	assert.Equal(t, "Good", rating)

	score, rating = cfg.ScoreItem(nil, themes)
	assert.Equal(t, 100, score)
	assert.Equal(t, "Excellent", rating)
}
