package stage

import (
	"appealboard/internal/stage/catalog"
)

// stepCheck binds a target step code to its entry predicate. Every predicate
// also pins the stored code it advances from, so a case can only ever move one
// step at a time and never sideways.
type stepCheck struct {
	target int
	met    func(f *Facts) bool
}

// Qualifier computes the step a case qualifies for from a fact snapshot. The
// checks run in descending code order and the first match wins; when nothing
// matches the base code is returned and the orchestrator decides whether that
// is a quiet no-op or an inconsistency.
type Qualifier struct {
	checks []stepCheck
}

func NewQualifier() *Qualifier {
	return &Qualifier{checks: []stepCheck{
		{3002, func(f *Facts) bool {
			return f.Case.StageCode == 3001 && f.Meeting != nil && f.Meeting.AllAccepted()
		}},
		{3001, func(f *Facts) bool {
			return f.Case.StageCode == 3000 && f.Meeting != nil && f.Meeting.NoneAccepted()
		}},
		{3000, func(f *Facts) bool {
			return f.Case.StageCode == 2004 && containsAll(f.HeadSignedDocTypes(), f.RequiredDocTypes)
		}},
		{2004, func(f *Facts) bool {
			return f.Case.StageCode == 2003 && containsAll(f.PresentDocTypes(), f.RequiredDocTypes)
		}},
		{2003, func(f *Facts) bool {
			return f.Case.StageCode == 2002 && f.HasHeadSignedDoc(catalog.DocTypeFormationOrder)
		}},
		{2002, func(f *Facts) bool {
			return f.Case.StageCode == 2001 && f.HasCollegium()
		}},
		{2001, func(f *Facts) bool {
			return f.Case.StageCode == 2000 && f.Case.DossierComplete()
		}},
		{2000, func(f *Facts) bool {
			return f.Case.StageCode == catalog.InitialStageCode && f.Case.SecretaryID != nil
		}},
		// A case nobody has taken into work is simply waiting, not
		// inconsistent: it still satisfies its own initial step.
		{catalog.InitialStageCode, func(f *Facts) bool {
			return f.Case.StageCode == catalog.InitialStageCode
		}},
	}}
}

// Qualify returns the step code the facts support, or the base code. A base
// result is the everyday waiting state: the stored step's successor is not
// yet reachable.
func (q *Qualifier) Qualify(f *Facts) int {
	for _, check := range q.checks {
		if check.met(f) {
			return check.target
		}
	}
	return catalog.BaseStageCode
}

// MaxTarget is the highest step the qualifier can ever award. A stored stage
// above it cannot have come from this engine.
func (q *Qualifier) MaxTarget() int {
	return q.checks[0].target
}

func containsAll(have map[string]bool, want []string) bool {
	if len(want) == 0 {
		return false
	}
	for _, code := range want {
		if !have[code] {
			return false
		}
	}
	return true
}
