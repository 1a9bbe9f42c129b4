package model

// ThemeStat is batch-level frequency analytics for one canonical theme.
type ThemeStat struct {
	Theme          string   `json:"theme"`
	MissCount      int      `json:"miss_count"`
	MissPercentage float64  `json:"miss_percentage"`
	Severity       string   `json:"severity"` // High / Medium / Low
	AffectedAgents []string `json:"affected_agents"`
}

// AgentPerformance is a derived, batch-level ranking entry. It is computed
// only from the compiled result list and never persisted independently.
type AgentPerformance struct {
	AgentID        string  `json:"agent_id"`
	AgentName      string  `json:"agent_name"`
	TotalItems     int     `json:"total_items"`
	TotalFindings  int     `json:"total_findings"`
	AvgFindings    float64 `json:"avg_findings_per_item"`
	ComplianceRate float64 `json:"compliance_rate"`
	CompositeScore float64 `json:"composite_score"`
	Grade          string  `json:"grade"`
	Rank           int     `json:"rank"`
}

// BatchSummary aggregates headline numbers for one analyzed batch.
type BatchSummary struct {
	TotalItems       int     `json:"total_items"`
	TotalFindings    int     `json:"total_findings"`
	AvgFindings      float64 `json:"avg_findings_per_item"`
	AvgSeverityScore float64 `json:"avg_severity_score"`
	ThemeCount       int     `json:"theme_count"`
	AnalysisDate     string  `json:"analysis_date"`
}

// BatchResult is the envelope returned to callers: either a complete
// result set (Success=true) or a batch-level failure with no records.
type BatchResult struct {
	RunID      string           `json:"run_id"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Results    []CompiledResult `json:"final_results"`
	Themes     []Theme          `json:"themes"`
	ThemeStats []ThemeStat      `json:"theme_stats,omitempty"`
	Agents     []AgentPerformance `json:"agent_rankings,omitempty"`
	Summary    BatchSummary     `json:"summary"`
}
