package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/focusguard/internal/config"
	"github.com/marcus/focusguard/internal/models"
	"github.com/spf13/pflag"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestApplyFlagOverrides(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Bool("close-on-escape", true, "")
		fs.Bool("close-on-outside-click", false, "")
		fs.Int("width", config.DefaultDialogWidth, "")
		return fs
	}

	tests := []struct {
		name string
		args []string
		want models.Config
	}{
		{
			name: "unset flags keep stored values",
			args: nil,
			want: models.Config{CloseOnEscape: false, CloseOnOutsideClick: true, DialogWidth: 70},
		},
		{
			name: "explicit flags win",
			args: []string{"--close-on-escape", "--close-on-outside-click=false", "--width", "40"},
			want: models.Config{CloseOnEscape: true, CloseOnOutsideClick: false, DialogWidth: 40},
		},
		{
			name: "non-positive width ignored",
			args: []string{"--width", "0"},
			want: models.Config{CloseOnEscape: false, CloseOnOutsideClick: true, DialogWidth: 70},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlags()
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := &models.Config{CloseOnEscape: false, CloseOnOutsideClick: true, DialogWidth: 70}
			applyFlagOverrides(fs, cfg)
			if *cfg != tt.want {
				t.Errorf("got %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, "init", "--dir", dir)
	if !strings.Contains(out, "INITIALIZED .focusguard/") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "sample projects") {
		t.Errorf("expected seed message, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".focusguard", "config.json"))
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.CloseOnEscape || cfg.DialogWidth != config.DefaultDialogWidth {
		t.Errorf("config = %+v", cfg)
	}

	out = execute(t, "init", "--dir", dir)
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init output = %q", out)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	execute(t, "init", "--dir", dir)

	out := execute(t, "inspect", "--dir", dir, "--view=false", "--depth=0", "d")
	for _, want := range []string{
		"active: cancel (button)",
		"dialog: role=dialog aria-modal=true",
		"1. button delete",
		"2. button cancel",
		"tree:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	out = execute(t, "inspect", "--dir", dir, "--view=false", "--depth=0", "d", "esc")
	if !strings.Contains(out, "dialog: none") {
		t.Errorf("dialog should be closed:\n%s", out)
	}
	if strings.Contains(out, "active: body") {
		t.Errorf("focus should return to a row:\n%s", out)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged without --debug: %s", buf.String())
	}
	newLogger(&buf, true).Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("debug record missing: %s", buf.String())
	}
}
