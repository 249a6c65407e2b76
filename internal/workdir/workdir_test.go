package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBaseDir(t *testing.T) {
	withData := t.TempDir()
	if err := os.MkdirAll(filepath.Join(withData, dataDir), 0755); err != nil {
		t.Fatal(err)
	}

	target := t.TempDir()
	redirected := t.TempDir()
	if err := os.WriteFile(filepath.Join(redirected, rootFile), []byte(target+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	relative := t.TempDir()
	if err := os.WriteFile(filepath.Join(relative, rootFile), []byte("shared"), 0644); err != nil {
		t.Fatal(err)
	}

	blank := t.TempDir()
	if err := os.WriteFile(filepath.Join(blank, rootFile), []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	plain := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"empty", "", ""},
		{"data dir present", withData, withData},
		{"absolute redirect", redirected, target},
		{"relative redirect", relative, filepath.Join(relative, "shared")},
		{"blank root file ignored", blank, blank},
		{"no markers", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseDir(tt.dir); got != tt.want {
				t.Errorf("ResolveBaseDir(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}
