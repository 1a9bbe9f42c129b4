package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/callqa-cli/internal/model"
)

// Prompt construction for every model-facing stage. All prompts demand a
// single JSON object and nothing else; the adapter still treats the output
// as untrusted and extracts the first balanced object it finds.

const analystSystem = `You are a quality-assurance analyst reviewing call-center transcripts against a required procedure checklist. Be precise and conservative: report only deviations you can point to in the transcript. Never invent section numbers or internal identifiers; describe issues in plain language. Respond with a single JSON object and no other text.`

// REQUIRED PROCEDURE block is shared by every per-item prompt so the
// system text (and its prompt cache entry) stays identical across calls.
func checklistBlock(checklistText string) string {
	if checklistText == "" {
		return ""
	}
	return "REQUIRED PROCEDURE:\n" + checklistText + "\n\n"
}

func extractionPrompt(checklistText string, item model.AnalysisItem) string {
	var b strings.Builder
	b.WriteString(checklistBlock(checklistText))
	b.WriteString("TRANSCRIPT:\n")
	b.WriteString(item.Transcript)
	b.WriteString("\n\n")
	b.WriteString(`Identify every deviation from the required procedure in this transcript. A deviation is a required step that was skipped, done incorrectly, or done out of a required order. If the call fully complies, return an empty list.

Return JSON:
{"findings": ["<plain-language description of one deviation>", ...]}`)
	return b.String()
}

func synthesisPrompt(findings []model.Finding, maxThemes int) string {
	var b strings.Builder
	b.WriteString("Below are compliance findings collected across a batch of call transcripts. Group them into at most ")
	fmt.Fprintf(&b, "%d", maxThemes)
	b.WriteString(` recurring themes. Each theme needs a short reusable name (3-6 words, no numbering, no identifiers) and a criticality: "Critical" for issues that create legal, financial, or safety exposure, "Non-Critical" otherwise.

FINDINGS:
`)
	for _, f := range findings {
		b.WriteString("- ")
		b.WriteString(f.Description)
		b.WriteString("\n")
	}
	b.WriteString(`
Return JSON:
{"themes": [{"name": "<theme name>", "criticality": "Critical|Non-Critical"}, ...]}`)
	return b.String()
}

func assignmentPrompt(item model.AnalysisItem, findings []string, themes []model.Theme) string {
	var b strings.Builder
	b.WriteString("These findings were identified for one call transcript:\n")
	for _, f := range findings {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\nAssign each finding to the matching themes from this fixed list. Use the theme names exactly as written; do not create new themes.\n\nTHEMES:\n")
	for _, t := range themes {
		b.WriteString("- ")
		b.WriteString(t.Name)
		b.WriteString("\n")
	}
	b.WriteString(`
Return JSON:
{"themes": ["<exact theme name>", ...], "reasoning": "<one short paragraph explaining the assignment>"}`)
	return b.String()
}

// rootCauseCategories is the fixed taxonomy the model chooses a primary
// root cause from.
var rootCauseCategories = []string{
	"Insufficient Training",
	"System/Tool Limitations",
	"Process Ambiguity",
	"Time Pressure",
	"Knowledge Gap",
	"Communication Skills Deficit",
	"Attention/Focus Issues",
	"Policy Understanding Gap",
	"Resource Unavailability",
	"Motivation/Engagement Issues",
	"Coaching/Feedback Gap",
	"Complex Customer Scenario",
}

func rootCausePrompt(item model.AnalysisItem, findings []string, assigned []string) string {
	var b strings.Builder
	b.WriteString("An agent's call had these compliance findings:\n")
	for _, f := range findings {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	if len(assigned) > 0 {
		b.WriteString("\nGrouped under themes: ")
		b.WriteString(strings.Join(assigned, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\nPick the single most likely primary root cause from this list:\n")
	for _, c := range rootCauseCategories {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString(`
Then give concrete, actionable coaching guidance for this agent. Address the agent's behavior, not the checklist wording.

Return JSON:
{"root_cause": "<category>: <one or two sentences>", "improvements": "<specific coaching guidance>"}`)
	return b.String()
}
