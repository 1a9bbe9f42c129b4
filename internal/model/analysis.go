// Package model defines the domain types shared across the analysis pipeline.
package model

// AnalysisItem is one transcript to analyze. Items are created from the
// caller's tabular input and never mutated by the pipeline.
type AnalysisItem struct {
	ID         string `json:"transcript_id"`
	AgentID    string `json:"agent_id"`
	AgentName  string `json:"agent_name"`
	Transcript string `json:"transcript"`
}

// Finding is a single free-text deviation identified in one transcript.
type Finding struct {
	ItemID      string `json:"transcript_id"`
	Description string `json:"description"`
}

// Criticality classifies a theme's impact on the severity score.
type Criticality string

const (
	CriticalityCritical    Criticality = "Critical"
	CriticalityNonCritical Criticality = "Non-Critical"
)

// Theme is a canonical corpus-wide label grouping similar findings.
// The theme set is synthesized once per batch and immutable afterward.
type Theme struct {
	Name        string      `json:"name"`
	Criticality Criticality `json:"criticality"`
}

// ThemeAssignment maps one item's findings onto the canonical theme set.
// Items with no findings carry an empty theme list and a fixed sentinel
// reasoning string.
type ThemeAssignment struct {
	ItemID    string   `json:"transcript_id"`
	Themes    []string `json:"themes"`
	Reasoning string   `json:"reasoning"`
}

// SeverityRecord holds the deterministic per-item severity outcome plus
// the model-synthesized root cause and coaching text.
type SeverityRecord struct {
	ItemID        string `json:"transcript_id"`
	RootCause     string `json:"root_cause"`
	Improvements  string `json:"improvements"`
	SeverityScore int    `json:"severity_score"`
	Rating        string `json:"severity_rating"`
}

// CompiledResult is the denormalized join of all stage outputs for one
// input item. The compiled list is the pipeline's sole output artifact:
// one record per input item, in input order.
type CompiledResult struct {
	ItemID        string   `json:"transcript_id"`
	AgentID       string   `json:"agent_id"`
	AgentName     string   `json:"agent_name"`
	Transcript    string   `json:"transcript"`
	Findings      []string `json:"findings"`
	FindingCount  int      `json:"finding_count"`
	Themes        []string `json:"mistake_themes"`
	Reasoning     string   `json:"reasoning"`
	RootCause     string   `json:"root_cause"`
	Improvements  string   `json:"improvements"`
	SeverityScore int      `json:"severity_score"`
	Rating        string   `json:"severity_rating"`

	// AnalysisError marks a record whose extraction or assignment stage
	// degraded after exhausting retries. The batch still succeeds.
	AnalysisError string `json:"analysis_error,omitempty"`
}

// Degraded reports whether any per-item stage failed for this record.
func (r CompiledResult) Degraded() bool {
	return r.AnalysisError != ""
}
