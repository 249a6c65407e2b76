package workflow

import (
	"github.com/marcus/focusguard/internal/models"
)

// AllTransitions returns every valid status transition.
// Moves that park or bury a project need a reason.
func AllTransitions() []*Transition {
	reason := &ReasonRequiredGuard{}
	length := &ReasonLengthGuard{Max: MaxReasonLength}

	return []*Transition{
		// From active
		{From: models.StatusActive, To: models.StatusOnHold, Guards: []Guard{reason, length}},
		{From: models.StatusActive, To: models.StatusCompleted, Guards: []Guard{length}},
		{From: models.StatusActive, To: models.StatusArchived, Guards: []Guard{reason, length}},

		// From on_hold
		{From: models.StatusOnHold, To: models.StatusActive, Guards: []Guard{length}},
		{From: models.StatusOnHold, To: models.StatusArchived, Guards: []Guard{reason, length}},

		// From completed
		{From: models.StatusCompleted, To: models.StatusActive, Guards: []Guard{length}},
		{From: models.StatusCompleted, To: models.StatusArchived, Guards: []Guard{length}},

		// From archived
		{From: models.StatusArchived, To: models.StatusActive, Guards: []Guard{reason, length}},
	}
}

// TransitionName returns a human-readable name for the transition
func TransitionName(from, to models.Status) string {
	switch {
	case to == models.StatusOnHold:
		return "hold"
	case from == models.StatusOnHold && to == models.StatusActive:
		return "resume"
	case to == models.StatusCompleted:
		return "complete"
	case to == models.StatusArchived:
		return "archive"
	case from == models.StatusCompleted && to == models.StatusActive:
		return "reopen"
	case from == models.StatusArchived && to == models.StatusActive:
		return "restore"
	default:
		return string(from) + " → " + string(to)
	}
}

// GetTransitionsFrom returns all possible targets from a given status, in
// workflow order
func GetTransitionsFrom(status models.Status) []models.Status {
	var targets []models.Status
	for _, t := range AllTransitions() {
		if t.From == status {
			targets = append(targets, t.To)
		}
	}
	return targets
}

// AllStatuses returns all valid statuses in workflow order
func AllStatuses() []models.Status {
	return []models.Status{
		models.StatusActive,
		models.StatusOnHold,
		models.StatusCompleted,
		models.StatusArchived,
	}
}
