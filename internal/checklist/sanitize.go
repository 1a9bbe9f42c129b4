package checklist

import (
	"regexp"
	"strings"
)

// Checklist documents carry internal identifiers ([ID-7], Phase 2:, 1.3.1
// section numbers) that must never surface in findings, theme names, or
// reasoning text. They are stripped both from prompt inputs and from model
// output, because instructing the model not to echo them is not reliable.
var (
	reBracketID   = regexp.MustCompile(`[\[(]ID-?\d+[\])]`)
	reBareID      = regexp.MustCompile(`\bID-?\d+\b`)
	rePhaseRef    = regexp.MustCompile(`(?i)[\[(]?Phase\s*\d+[\])]?\s*:?`)
	reElementRef  = regexp.MustCompile(`(?i)\[(Element|Step)-?\d+\]`)
	reSectionNum  = regexp.MustCompile(`(?m)^\s*\d+(\.\d+)*[.)]?\s+`)
	reThemePrefix = regexp.MustCompile(`(?i)^Theme\s*\d+\s*:?\s*`)
	reLeadPunct   = regexp.MustCompile(`^\s*[:\-,.]\s*`)
	reSpaces      = regexp.MustCompile(`[ \t]+`)
)

// PreprocessContent scrubs checklist identifiers from text that will be
// embedded in a prompt.
func PreprocessContent(text string) string {
	cleaned := reBracketID.ReplaceAllString(text, "")
	cleaned = reBareID.ReplaceAllString(cleaned, "")
	cleaned = rePhaseRef.ReplaceAllString(cleaned, "")
	cleaned = reElementRef.ReplaceAllString(cleaned, "")
	cleaned = reSectionNum.ReplaceAllString(cleaned, "")
	cleaned = reSpaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// CleanOutputText scrubs residual identifiers from model output (finding
// descriptions, reasoning paragraphs).
func CleanOutputText(text string) string {
	if text == "" {
		return text
	}
	cleaned := PreprocessContent(text)
	cleaned = reThemePrefix.ReplaceAllString(cleaned, "")
	cleaned = reLeadPunct.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// CleanThemeName reduces a raw model theme label to a short canonical
// name: numbering prefixes, identifiers, and trailing descriptions after a
// colon are removed.
func CleanThemeName(theme string) string {
	if theme == "" {
		return theme
	}
	cleaned := reThemePrefix.ReplaceAllString(theme, "")
	if idx := strings.Index(cleaned, ":"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	cleaned = reBracketID.ReplaceAllString(cleaned, "")
	cleaned = reBareID.ReplaceAllString(cleaned, "")
	cleaned = rePhaseRef.ReplaceAllString(cleaned, "")
	cleaned = reSpaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
