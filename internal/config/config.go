package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/focusguard/internal/models"
)

const configFile = ".focusguard/config.json"

// DefaultDialogWidth is used when the config leaves the width unset.
const DefaultDialogWidth = 56

// Default returns the configuration used when no file exists
func Default() *models.Config {
	return &models.Config{
		CloseOnEscape: true,
		DialogWidth:   DefaultDialogWidth,
	}
}

// Load reads the config from disk. Fields missing from the file keep their
// defaults.
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if cfg.DialogWidth <= 0 {
		cfg.DialogWidth = DefaultDialogWidth
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetFocus records the project the workbench should focus on next start
func SetFocus(baseDir string, projectID string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.FocusedProjectID = projectID
	return Save(baseDir, cfg)
}

// GetFocus returns the remembered project ID
func GetFocus(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.FocusedProjectID, nil
}

// SetSearchQuery persists the workbench filter
func SetSearchQuery(baseDir string, query string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.SearchQuery = query
	return Save(baseDir, cfg)
}
