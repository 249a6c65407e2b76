package workflow

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxReasonLength caps the reason stored with a status change.
const MaxReasonLength = 500

// ReasonRequiredGuard demands a non-blank reason unless forced
type ReasonRequiredGuard struct{}

func (g *ReasonRequiredGuard) Name() string {
	return "ReasonRequiredGuard"
}

func (g *ReasonRequiredGuard) Check(ctx *TransitionContext) GuardResult {
	if ctx.Force {
		return GuardResult{Passed: true}
	}
	if strings.TrimSpace(ctx.Reason) != "" {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: fmt.Sprintf("a reason is required to %s a project", TransitionName(ctx.FromStatus, ctx.ToStatus)),
	}
}

// ReasonLengthGuard rejects reasons longer than Max runes
type ReasonLengthGuard struct {
	Max int
}

func (g *ReasonLengthGuard) Name() string {
	return "ReasonLengthGuard"
}

func (g *ReasonLengthGuard) Check(ctx *TransitionContext) GuardResult {
	if g.Max <= 0 || utf8.RuneCountInString(ctx.Reason) <= g.Max {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: fmt.Sprintf("reason is longer than %d characters", g.Max),
	}
}
