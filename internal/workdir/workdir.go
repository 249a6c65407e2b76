// Package workdir resolves the focusguard data root, supporting git
// worktree redirection via .focusguard-root files.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	rootFile = ".focusguard-root"
	dataDir  = ".focusguard"
)

// ResolveBaseDir resolves the data root with conservative heuristics:
//  1. Honor .focusguard-root in the current directory.
//  2. Use current directory if it already has a .focusguard directory.
//  3. If inside git, check git root for .focusguard-root or .focusguard.
//
// If no markers are found, it returns the original baseDir unchanged.
func ResolveBaseDir(baseDir string) string {
	if baseDir == "" {
		return baseDir
	}
	baseDir = filepath.Clean(baseDir)

	if resolved, ok := readRootFile(baseDir); ok {
		return resolved
	}
	if hasDataDir(baseDir) {
		return baseDir
	}

	gitRoot, err := gitTopLevel(baseDir)
	if err != nil || gitRoot == "" {
		return baseDir
	}
	gitRoot = filepath.Clean(gitRoot)

	if resolved, ok := readRootFile(gitRoot); ok {
		return resolved
	}
	if hasDataDir(gitRoot) {
		return gitRoot
	}

	return baseDir
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}

	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}

	return filepath.Clean(resolved), true
}

func hasDataDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, dataDir))
	return err == nil && fi.IsDir()
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
