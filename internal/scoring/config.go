// Package scoring implements the deterministic severity, rating, and
// ranking rules. Everything here is pure computation: no network calls,
// no clocks, no global state.
package scoring

// RatingBucket maps a minimum score to a rating label. Buckets are
// evaluated in order; the first bucket whose Min the score reaches wins.
type RatingBucket struct {
	Min   int
	Label string
}

// GradeThreshold maps a minimum composite score to an agent letter grade.
type GradeThreshold struct {
	Min   float64
	Grade string
}

// Config holds every business-rule constant the engine uses. The source
// systems hard-coded these (with conflicting values between variants);
// here they are injected so the scoring law is testable in isolation.
type Config struct {
	// Per-occurrence severity deductions from the starting score of 100.
	CriticalDelta    int
	NonCriticalDelta int

	// Rating buckets sorted by descending Min. The last bucket should
	// have Min 0 as the catch-all.
	Buckets []RatingBucket

	// Theme frequency severity cutoffs (percent of items affected).
	HighFreqPct   float64
	MediumFreqPct float64

	// Agent composite: compliance_rate - avg_findings*FindingWeight.
	FindingWeight float64

	// Grade thresholds sorted by descending Min; below the last entry
	// the grade is FallbackGrade.
	Grades        []GradeThreshold
	FallbackGrade string
}

// DefaultConfig returns the standard 5-bucket rating scheme.
func DefaultConfig() Config {
	return Config{
		CriticalDelta:    15,
		NonCriticalDelta: 5,
		Buckets: []RatingBucket{
			{Min: 90, Label: "Excellent"},
			{Min: 75, Label: "Good"},
			{Min: 60, Label: "Fair"},
			{Min: 40, Label: "Poor"},
			{Min: 0, Label: "Critical"},
		},
		HighFreqPct:   30,
		MediumFreqPct: 15,
		FindingWeight: 10,
		Grades: []GradeThreshold{
			{Min: 80, Grade: "A"},
			{Min: 60, Grade: "B"},
			{Min: 40, Grade: "C"},
			{Min: 20, Grade: "D"},
		},
		FallbackGrade: "F",
	}
}

// TriageBuckets is the alternate 3-bucket scheme used by consumers that
// only need a coarse issue level.
func TriageBuckets() []RatingBucket {
	return []RatingBucket{
		{Min: 81, Label: "Low"},
		{Min: 50, Label: "Medium"},
		{Min: 0, Label: "High"},
	}
}

// WithScheme returns a copy of cfg using the named rating scheme:
// "standard" (default 5-bucket) or "triage" (3-bucket).
func (c Config) WithScheme(scheme string) Config {
	if scheme == "triage" {
		c.Buckets = TriageBuckets()
	}
	return c
}
