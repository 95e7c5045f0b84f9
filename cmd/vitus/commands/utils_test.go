// ABOUTME: Tests for shared CLI helpers
// ABOUTME: Verifies truncation, quantity formatting and time-list parsing

package commands

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"tiny max has no ellipsis", "hello", 2, "he"},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{12, "12"},
		{2.5, "2.5"},
		{0.125, "0.125"},
	}

	for _, tt := range tests {
		if got := formatQuantity(tt.input); got != tt.want {
			t.Errorf("formatQuantity(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitTimes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma separated", "08:00,20:00", []string{"08:00", "20:00"}},
		{"space separated", "08:00 20:00", []string{"08:00", "20:00"}},
		{"mixed with extra spaces", "08:00, 14:00 ,20:00", []string{"08:00", "14:00", "20:00"}},
		{"single time", "09:30", []string{"09:30"}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitTimes(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTimes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
