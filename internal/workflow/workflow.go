package workflow

import (
	"github.com/marcus/focusguard/internal/models"
)

// TransitionMode controls how guards are applied
type TransitionMode int

const (
	// ModeLiberal disables all guard checks
	ModeLiberal TransitionMode = iota
	// ModeAdvisory runs guards but only returns warnings, allows transition
	ModeAdvisory
	// ModeStrict blocks transitions when guards fail
	ModeStrict
)

// GuardResult represents the outcome of a guard check
type GuardResult struct {
	Passed  bool
	Message string
	Guard   string
}

// Guard checks whether a transition should be allowed
type Guard interface {
	Name() string
	Check(ctx *TransitionContext) GuardResult
}

// TransitionContext provides context for a status transition
type TransitionContext struct {
	Project    *models.Project
	FromStatus models.Status
	ToStatus   models.Status
	Reason     string
	Force      bool
}

// Transition defines a valid status transition with optional guards
type Transition struct {
	From   models.Status
	To     models.Status
	Guards []Guard
}

// StateMachine manages project status transitions
type StateMachine struct {
	transitions map[models.Status]map[models.Status]*Transition
	mode        TransitionMode
}

// New creates a new StateMachine with the given mode
func New(mode TransitionMode) *StateMachine {
	sm := &StateMachine{
		transitions: make(map[models.Status]map[models.Status]*Transition),
		mode:        mode,
	}
	for _, t := range AllTransitions() {
		sm.addTransition(t)
	}
	return sm
}

// DefaultMachine returns a state machine that blocks on guard failures
func DefaultMachine() *StateMachine {
	return New(ModeStrict)
}

// Mode returns the current transition mode
func (sm *StateMachine) Mode() TransitionMode {
	return sm.mode
}

// SetMode changes the transition mode
func (sm *StateMachine) SetMode(mode TransitionMode) {
	sm.mode = mode
}

func (sm *StateMachine) addTransition(t *Transition) {
	if sm.transitions[t.From] == nil {
		sm.transitions[t.From] = make(map[models.Status]*Transition)
	}
	sm.transitions[t.From][t.To] = t
}

// IsValidTransition checks if a transition exists in the state machine
func (sm *StateMachine) IsValidTransition(from, to models.Status) bool {
	return sm.GetTransition(from, to) != nil
}

// GetTransition returns the transition definition if it exists
func (sm *StateMachine) GetTransition(from, to models.Status) *Transition {
	if toMap, ok := sm.transitions[from]; ok {
		return toMap[to]
	}
	return nil
}

// Validate checks if a transition is allowed and returns any guard results
func (sm *StateMachine) Validate(ctx *TransitionContext) ([]GuardResult, error) {
	if ctx == nil {
		return nil, &TransitionError{Reason: "nil context"}
	}
	if ctx.Project == nil {
		return nil, &TransitionError{
			From:   ctx.FromStatus,
			To:     ctx.ToStatus,
			Reason: "nil project in context",
		}
	}

	transition := sm.GetTransition(ctx.FromStatus, ctx.ToStatus)
	if transition == nil {
		return nil, &TransitionError{
			From:      ctx.FromStatus,
			To:        ctx.ToStatus,
			ProjectID: ctx.Project.ID,
			Reason:    "transition not allowed",
		}
	}

	if sm.mode == ModeLiberal {
		return nil, nil
	}

	var results []GuardResult
	var validationErr ValidationError

	for _, guard := range transition.Guards {
		result := guard.Check(ctx)
		result.Guard = guard.Name()
		results = append(results, result)

		if !result.Passed {
			validationErr.Add(&GuardError{
				GuardName: guard.Name(),
				Reason:    result.Message,
				ProjectID: ctx.Project.ID,
			})
		}
	}

	if sm.mode == ModeAdvisory {
		return results, nil
	}
	if validationErr.HasErrors() {
		return results, &validationErr
	}
	return results, nil
}

// CanTransition checks if a transition can be performed (convenience method)
func (sm *StateMachine) CanTransition(ctx *TransitionContext) (bool, []GuardResult) {
	results, err := sm.Validate(ctx)
	return err == nil, results
}

// RequiresReason reports whether moving from -> to runs ReasonRequiredGuard
func (sm *StateMachine) RequiresReason(from, to models.Status) bool {
	t := sm.GetTransition(from, to)
	if t == nil {
		return false
	}
	for _, g := range t.Guards {
		if _, ok := g.(*ReasonRequiredGuard); ok {
			return true
		}
	}
	return false
}
