package models

import (
	"time"
)

// Status represents a project's lifecycle status
type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// IsValidStatus reports whether s is a known status
func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusOnHold, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Label returns a display label for the status
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusOnHold:
		return "On hold"
	case StatusCompleted:
		return "Completed"
	case StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// Project is a row in the workbench
type Project struct {
	ID        string
	Name      string
	Partner   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusChange records one status transition and the reason given for it
type StatusChange struct {
	ID        int64
	ProjectID string
	From      Status
	To        Status
	Reason    string
	Timestamp time.Time
}

// Config is the persisted workbench configuration
type Config struct {
	CloseOnEscape       bool   `json:"close_on_escape"`
	CloseOnOutsideClick bool   `json:"close_on_outside_click"`
	DialogWidth         int    `json:"dialog_width,omitempty"`
	SearchQuery         string `json:"search_query,omitempty"`
	FocusedProjectID    string `json:"focused_project_id,omitempty"`
}
