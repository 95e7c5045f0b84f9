// ABOUTME: Tests for the enrichment client helpers
// ABOUTME: Verifies category clamping, fence stripping and suggestion merging
package llm

import (
	"testing"
	"time"

	"github.com/harper/vitus/internal/models"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient(\"\") should fail")
	}
	if _, err := NewClientWithConfig(&ClientConfig{}); err == nil {
		t.Error("NewClientWithConfig without a key should fail")
	}
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c, err := NewClientWithConfig(&ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClientWithConfig() error = %v", err)
	}
	if c.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %s, want %s", c.chatModel, DefaultChatModel)
	}
	if c.timeout != 2*time.Minute {
		t.Errorf("timeout = %v, want 2m", c.timeout)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Heart", "Heart"},
		{"heart", "Heart"},
		{"SLEEP", "Sleep"},
		{"  Joints  ", "Joints"},
		{"Cardiology", "Other"},
		{"", "Other"},
		{"other", "Other"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.input); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"uppercase fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  \n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripJSONFences(tt.input); got != tt.want {
				t.Errorf("StripJSONFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMedicationSuggestion_Apply(t *testing.T) {
	med := models.Medication{
		ID:      "med_1",
		Name:    "Vitamin D",
		Purpose: "existing purpose",
		Notes:   "existing notes",
	}

	sug := MedicationSuggestion{
		Category: "Immunity",
		Notes:    "take with a fatty meal",
		Warning:  "high doses accumulate",
	}

	got := sug.Apply(med)

	if got.Purpose != "existing purpose" {
		t.Error("empty suggestion fields must not wipe existing values")
	}
	if got.Category != "Immunity" {
		t.Errorf("Category = %q, want Immunity", got.Category)
	}
	if got.Notes != "take with a fatty meal" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if got.Warning != "high doses accumulate" {
		t.Errorf("Warning = %q", got.Warning)
	}
	if got.ID != "med_1" || got.Name != "Vitamin D" {
		t.Error("Apply must not touch identity fields")
	}
}
