package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workflow"
)

// ErrNotFound is returned when a project ID does not exist.
var ErrNotFound = errors.New("project not found")

// ListProjectsOptions filters ListProjects
type ListProjectsOptions struct {
	Status []models.Status
}

const projectColumns = "id, name, partner, status, created_at, updated_at"

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var status string
	if err := row.Scan(&p.ID, &p.Name, &p.Partner, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = models.Status(status)
	return &p, nil
}

// CreateProject inserts p, assigning an ID and timestamps. Status defaults
// to active.
func (db *DB) CreateProject(p *models.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if !models.IsValidStatus(p.Status) {
		return fmt.Errorf("invalid status %q", p.Status)
	}

	id, err := idGenerator()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.ID = id
	p.CreatedAt, p.UpdatedAt = now, now

	_, err = db.conn.Exec(
		`INSERT INTO projects (id, name, partner, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, strings.TrimSpace(p.Partner), string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetProject returns the project with the given ID
func (db *DB) GetProject(id string) (*models.Project, error) {
	row := db.conn.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, NormalizeProjectID(id))
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListProjects returns projects ordered by name
func (db *DB) ListProjects(opts ListProjectsOptions) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if len(opts.Status) > 0 {
		placeholders := make([]string, len(opts.Status))
		for i, s := range opts.Status {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project and its status history
func (db *DB) DeleteProject(id string) error {
	res, err := db.conn.Exec(`DELETE FROM projects WHERE id = ?`, NormalizeProjectID(id))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// TransitionProject moves a project to a new status after validating the
// move with sm, and records the change with its reason.
func (db *DB) TransitionProject(sm *workflow.StateMachine, id string, to models.Status, reason string) (*models.Project, error) {
	p, err := db.GetProject(id)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if _, err := sm.Validate(&workflow.TransitionContext{
		Project:    p,
		FromStatus: p.Status,
		ToStatus:   to,
		Reason:     reason,
	}); err != nil {
		return nil, err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := tx.Exec(`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`, string(to), now, p.ID); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO status_log (project_id, from_status, to_status, reason, timestamp) VALUES (?, ?, ?, ?, ?)`,
		p.ID, string(p.Status), string(to), reason, now,
	); err != nil {
		return nil, fmt.Errorf("log status change: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	p.Status = to
	p.UpdatedAt = now
	return p, nil
}

// StatusHistory returns a project's status changes, oldest first
func (db *DB) StatusHistory(id string) ([]models.StatusChange, error) {
	rows, err := db.conn.Query(
		`SELECT id, project_id, from_status, to_status, reason, timestamp FROM status_log WHERE project_id = ? ORDER BY id`,
		NormalizeProjectID(id),
	)
	if err != nil {
		return nil, fmt.Errorf("status history: %w", err)
	}
	defer rows.Close()

	var changes []models.StatusChange
	for rows.Next() {
		var c models.StatusChange
		var from, to string
		if err := rows.Scan(&c.ID, &c.ProjectID, &from, &to, &c.Reason, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		c.From, c.To = models.Status(from), models.Status(to)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// SeedProjects are inserted by Seed into an empty database.
var SeedProjects = []models.Project{
	{Name: "Harbor Lights Festival", Partner: "City of Kestrel Bay"},
	{Name: "Literacy Outreach", Partner: "Northside Library"},
	{Name: "River Cleanup 2026", Partner: "Friends of the Ouse"},
	{Name: "Winter Coat Drive", Partner: "Saint Brigid's Shelter"},
	{Name: "Youth Robotics League", Partner: "Ashford Secondary"},
}

// Seed inserts SeedProjects when the projects table is empty. It reports
// how many rows were added.
func (db *DB) Seed() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for _, p := range SeedProjects {
		if err := db.CreateProject(&p); err != nil {
			return 0, err
		}
	}
	return len(SeedProjects), nil
}
