package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/focusguard/internal/models"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !cfg.CloseOnEscape {
			t.Error("CloseOnEscape should default to true")
		}
		if cfg.CloseOnOutsideClick {
			t.Error("CloseOnOutsideClick should default to false")
		}
		if cfg.DialogWidth != DefaultDialogWidth {
			t.Errorf("DialogWidth = %d, want %d", cfg.DialogWidth, DefaultDialogWidth)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `{"close_on_outside_click": true}`)

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !cfg.CloseOnOutsideClick {
			t.Error("CloseOnOutsideClick not read from file")
		}
		if !cfg.CloseOnEscape {
			t.Error("CloseOnEscape default lost")
		}
		if cfg.DialogWidth != DefaultDialogWidth {
			t.Errorf("DialogWidth = %d, want default", cfg.DialogWidth)
		}
	})

	t.Run("explicit false overrides default", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `{"close_on_escape": false, "dialog_width": 70}`)

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.CloseOnEscape {
			t.Error("CloseOnEscape should be false")
		}
		if cfg.DialogWidth != 70 {
			t.Errorf("DialogWidth = %d, want 70", cfg.DialogWidth)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `{not json`)
		if _, err := Load(dir); err == nil {
			t.Error("Load should fail on invalid JSON")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &models.Config{
		CloseOnEscape:       false,
		CloseOnOutsideClick: true,
		DialogWidth:         64,
		SearchQuery:         "river",
		FocusedProjectID:    "pj-abc123",
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFocusAndSearchHelpers(t *testing.T) {
	dir := t.TempDir()

	if err := SetFocus(dir, "pj-111111"); err != nil {
		t.Fatalf("SetFocus failed: %v", err)
	}
	if err := SetSearchQuery(dir, "coat"); err != nil {
		t.Fatalf("SetSearchQuery failed: %v", err)
	}

	id, err := GetFocus(dir)
	if err != nil {
		t.Fatalf("GetFocus failed: %v", err)
	}
	if id != "pj-111111" {
		t.Errorf("GetFocus() = %q, want pj-111111", id)
	}
	cfg, _ := Load(dir)
	if cfg.SearchQuery != "coat" {
		t.Errorf("SearchQuery = %q, want coat", cfg.SearchQuery)
	}
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	path := filepath.Join(dir, configFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("setup: mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}
}
