package models

import (
	"testing"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusActive, true},
		{StatusOnHold, true},
		{StatusCompleted, true},
		{StatusArchived, true},
		{"open", false},
		{"", false},
		{"Active", false},
	}

	for _, tt := range tests {
		if got := IsValidStatus(tt.status); got != tt.valid {
			t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, got, tt.valid)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusOnHold.Label() != "On hold" {
		t.Errorf("StatusOnHold.Label() = %q", StatusOnHold.Label())
	}
	if Status("custom").Label() != "custom" {
		t.Errorf("unknown status label = %q, want raw value", Status("custom").Label())
	}
}
