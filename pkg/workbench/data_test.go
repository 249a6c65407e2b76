package workbench

import (
	"strings"
	"testing"
	"time"

	"github.com/marcus/focusguard/internal/models"
)

func TestFilterProjects(t *testing.T) {
	projects := []models.Project{
		{ID: "pj-1", Name: "Harbor Lights Festival", Partner: "City of Kestrel Bay", Status: models.StatusActive},
		{ID: "pj-2", Name: "River Cleanup 2026", Partner: "Friends of the Ouse", Status: models.StatusOnHold},
		{ID: "pj-3", Name: "Winter Coat Drive", Partner: "Saint Brigid's Shelter", Status: models.StatusArchived},
	}

	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantLen   int
	}{
		{"empty keeps order", "", "pj-1", 3},
		{"name", "cleanup", "pj-2", 1},
		{"partner", "brigid", "pj-3", 1},
		{"status", "archived", "pj-3", 1},
		{"no match", "zzz", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterProjects(tt.query, projects)
			if len(got) != tt.wantLen {
				t.Fatalf("got %d results, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("first = %s, want %s", got[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestFormatProjectAsMarkdown(t *testing.T) {
	p := &models.Project{ID: "pj-abc", Name: "Literacy Outreach", Partner: "Northside Library", Status: models.StatusOnHold}
	history := []models.StatusChange{{
		ProjectID: p.ID,
		From:      models.StatusActive,
		To:        models.StatusOnHold,
		Reason:    "waiting on volunteers",
		Timestamp: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}}

	got := formatProjectAsMarkdown(p, history)
	for _, want := range []string{
		"# Literacy Outreach\n",
		"**ID:** `pj-abc`",
		"**Partner:** Northside Library",
		"## History",
		"- 2026-03-04 Active → On hold: waiting on volunteers",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	bare := formatProjectAsMarkdown(&models.Project{ID: "pj-x", Name: "Solo", Status: models.StatusActive}, nil)
	if strings.Contains(bare, "Partner") || strings.Contains(bare, "History") {
		t.Errorf("unexpected sections in:\n%s", bare)
	}
}
