package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bracket id", "[ID-4] confirm policy number", "confirm policy number"},
		{"paren id", "(ID7) confirm policy number", "confirm policy number"},
		{"bare id", "confirm ID-12 policy number", "confirm policy number"},
		{"phase ref", "Phase 3: gather loss details", "gather loss details"},
		{"element ref", "[Element-2] read disclosure", "read disclosure"},
		{"section number", "2.1.3 verify identity", "verify identity"},
		{"collapses spaces", "verify   the    caller", "verify the caller"},
		{"clean text untouched", "thank the caller for their patience", "thank the caller for their patience"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreprocessContent(tt.in))
		})
	}
}

func TestCleanOutputText(t *testing.T) {
	assert.Equal(t, "agent skipped the disclosure",
		CleanOutputText("Theme 2: agent skipped the disclosure"))
	assert.Equal(t, "missed verification",
		CleanOutputText(": missed verification"))
	assert.Equal(t, "", CleanOutputText(""))
}

func TestCleanThemeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Theme 1: Missed Identity Verification", "Missed Identity Verification"},
		{"Missed Verification: agent never asked for DOB", "Missed Verification"},
		{"[ID-9] Incomplete Disclosures", "Incomplete Disclosures"},
		{"Skipped Recap", "Skipped Recap"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanThemeName(tt.in))
	}
}
