package db

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workflow"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()

	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(Path(dir)); os.IsNotExist(err) {
		t.Error("Database file not created")
	}
	if db.BaseDir() != dir {
		t.Errorf("BaseDir() = %q, want %q", db.BaseDir(), dir)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open should fail before init")
	}
}

func TestOpenAfterInitialize(t *testing.T) {
	dir := t.TempDir()
	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	p := &models.Project{Name: "Persisted"}
	if err := db.CreateProject(p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	db.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetProject(p.ID); err != nil {
		t.Errorf("GetProject after reopen: %v", err)
	}
}

func TestCreateAndGetProject(t *testing.T) {
	db := newTestDB(t)

	p := &models.Project{Name: "  Harbor Lights  ", Partner: "City"}
	if err := db.CreateProject(p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.ID == "" {
		t.Error("Project ID not set")
	}
	if p.Status != models.StatusActive {
		t.Errorf("default status = %q, want active", p.Status)
	}

	got, err := db.GetProject(p.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Name != "Harbor Lights" {
		t.Errorf("Name = %q, want trimmed name", got.Name)
	}
	if got.Partner != "City" {
		t.Errorf("Partner = %q, want City", got.Partner)
	}

	// Bare hex IDs are accepted.
	if _, err := db.GetProject(p.ID[len(projectIDPrefix):]); err != nil {
		t.Errorf("GetProject with bare ID: %v", err)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateProject(&models.Project{Name: "   "}); err == nil {
		t.Error("blank name should be rejected")
	}
	if err := db.CreateProject(&models.Project{Name: "x", Status: "open"}); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestListProjects(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"charlie", "Alpha", "bravo"} {
		if err := db.CreateProject(&models.Project{Name: name}); err != nil {
			t.Fatalf("CreateProject(%s): %v", name, err)
		}
	}
	held := &models.Project{Name: "delta", Status: models.StatusOnHold}
	if err := db.CreateProject(held); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	all, err := db.ListProjects(ListProjectsOptions{})
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	want := []string{"Alpha", "bravo", "charlie", "delta"}
	if len(all) != len(want) {
		t.Fatalf("got %d projects, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("projects[%d] = %q, want %q", i, all[i].Name, name)
		}
	}

	onHold, err := db.ListProjects(ListProjectsOptions{Status: []models.Status{models.StatusOnHold}})
	if err != nil {
		t.Fatalf("ListProjects(on_hold) failed: %v", err)
	}
	if len(onHold) != 1 || onHold[0].ID != held.ID {
		t.Errorf("on_hold filter = %+v, want only %s", onHold, held.ID)
	}
}

func TestDeleteProject(t *testing.T) {
	db := newTestDB(t)
	p := &models.Project{Name: "Doomed"}
	if err := db.CreateProject(p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if _, err := db.TransitionProject(workflow.DefaultMachine(), p.ID, models.StatusCompleted, ""); err != nil {
		t.Fatalf("TransitionProject failed: %v", err)
	}

	if err := db.DeleteProject(p.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if _, err := db.GetProject(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProject after delete = %v, want ErrNotFound", err)
	}
	history, err := db.StatusHistory(p.ID)
	if err != nil {
		t.Fatalf("StatusHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history survived delete: %d rows", len(history))
	}
	if err := db.DeleteProject(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestTransitionProject(t *testing.T) {
	db := newTestDB(t)
	sm := workflow.DefaultMachine()
	p := &models.Project{Name: "Outreach"}
	if err := db.CreateProject(p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// Reason required for on_hold.
	_, err := db.TransitionProject(sm, p.ID, models.StatusOnHold, "  ")
	var ge *workflow.GuardError
	if !errors.As(err, &ge) {
		t.Fatalf("TransitionProject without reason = %v, want GuardError", err)
	}
	got, _ := db.GetProject(p.ID)
	if got.Status != models.StatusActive {
		t.Errorf("status changed despite guard failure: %s", got.Status)
	}

	updated, err := db.TransitionProject(sm, p.ID, models.StatusOnHold, " waiting on partner ")
	if err != nil {
		t.Fatalf("TransitionProject failed: %v", err)
	}
	if updated.Status != models.StatusOnHold {
		t.Errorf("Status = %s, want on_hold", updated.Status)
	}

	// Not a valid move.
	_, err = db.TransitionProject(sm, p.ID, models.StatusCompleted, "")
	var te *workflow.TransitionError
	if !errors.As(err, &te) {
		t.Errorf("on_hold → completed = %v, want TransitionError", err)
	}

	history, err := db.StatusHistory(p.ID)
	if err != nil {
		t.Fatalf("StatusHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}
	h := history[0]
	if h.From != models.StatusActive || h.To != models.StatusOnHold || h.Reason != "waiting on partner" {
		t.Errorf("history entry = %+v", h)
	}
}

func TestTransitionMissingProject(t *testing.T) {
	db := newTestDB(t)
	_, err := db.TransitionProject(workflow.DefaultMachine(), "pj-000000", models.StatusCompleted, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("TransitionProject(missing) = %v, want ErrNotFound", err)
	}
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)

	n, err := db.Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if n != len(SeedProjects) {
		t.Errorf("Seed() = %d, want %d", n, len(SeedProjects))
	}

	n, err = db.Seed()
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second Seed() = %d, want 0", n)
	}
}

func TestIDGeneratorOverride(t *testing.T) {
	db := newTestDB(t)

	orig := idGenerator
	defer func() { idGenerator = orig }()
	seq := 0
	idGenerator = func() (string, error) {
		seq++
		return fmt.Sprintf("pj-%06d", seq), nil
	}

	p := &models.Project{Name: "Fixed"}
	if err := db.CreateProject(p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.ID != "pj-000001" {
		t.Errorf("ID = %q, want pj-000001", p.ID)
	}

	idGenerator = func() (string, error) { return "", errors.New("entropy exhausted") }
	if err := db.CreateProject(&models.Project{Name: "Broken"}); err == nil {
		t.Error("CreateProject should surface ID generation errors")
	}
}

func TestNormalizeProjectID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"abc123", "pj-abc123"},
		{"pj-abc123", "pj-abc123"},
	}
	for _, tt := range tests {
		if got := NormalizeProjectID(tt.in); got != tt.want {
			t.Errorf("NormalizeProjectID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
