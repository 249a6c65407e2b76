package workbench

import (
	"sort"
	"time"

	"github.com/marcus/focusguard/internal/db"
	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workflow"
	"github.com/sahilm/fuzzy"
)

// RefreshDataMsg carries a fresh project list
type RefreshDataMsg struct {
	Projects  []models.Project
	Error     error
	Timestamp time.Time
}

// deleteDoneMsg reports the end of an in-flight delete
type deleteDoneMsg struct {
	ID  string
	Err error
}

// statusDoneMsg reports the end of a status transition
type statusDoneMsg struct {
	Project *models.Project
	Err     error
}

// createDoneMsg reports the end of a project insert
type createDoneMsg struct {
	Project *models.Project
	Err     error
}

// clipboardMsg reports the result of a copy
type clipboardMsg struct {
	Name string
	Err  error
}

// FetchData loads every project
func FetchData(database *db.DB) RefreshDataMsg {
	projects, err := database.ListProjects(db.ListProjectsOptions{})
	return RefreshDataMsg{Projects: projects, Error: err, Timestamp: time.Now()}
}

func deleteProject(database *db.DB, id string) deleteDoneMsg {
	return deleteDoneMsg{ID: id, Err: database.DeleteProject(id)}
}

func transitionProject(database *db.DB, sm *workflow.StateMachine, id string, to models.Status, reason string) statusDoneMsg {
	p, err := database.TransitionProject(sm, id, to, reason)
	return statusDoneMsg{Project: p, Err: err}
}

func createProject(database *db.DB, name, partner string) createDoneMsg {
	p := &models.Project{Name: name, Partner: partner}
	if err := database.CreateProject(p); err != nil {
		return createDoneMsg{Err: err}
	}
	return createDoneMsg{Project: p}
}

type projectSearchSource []models.Project

func (s projectSearchSource) String(i int) string {
	return s[i].Name + " " + s[i].Partner + " " + string(s[i].Status)
}

func (s projectSearchSource) Len() int {
	return len(s)
}

// filterProjects fuzzy-matches query against name, partner and status,
// best match first. An empty query keeps the stored order.
func filterProjects(query string, projects []models.Project) []models.Project {
	if query == "" {
		return projects
	}

	matches := fuzzy.FindFrom(query, projectSearchSource(projects))
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	result := make([]models.Project, len(matches))
	for i, m := range matches {
		result[i] = projects[m.Index]
	}
	return result
}
