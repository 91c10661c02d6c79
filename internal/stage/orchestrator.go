package stage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	casemodels "appealboard/internal/cases/models"
	"appealboard/internal/notify"
	"appealboard/internal/stage/catalog"
	"appealboard/internal/stage/metrics"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/requestcontext"
)

// Transition describes one committed stage change.
type Transition struct {
	CaseID id.CaseID
	From   int
	To     int
	Title  string
}

// Deps wires the orchestrator. Broadcasters is a factory: broadcast notifiers
// carry per-delivery addressee state, so the orchestrator constructs a fresh
// set for every committed transition instead of sharing instances across
// concurrent requests. UserNotifier reaches only the acting user.
type Deps struct {
	Cases        CaseStore
	Docs         DocumentSource
	Meetings     MeetingSource
	Users        UserDirectory
	DocCreator   DocumentCreator
	UserNotifier notify.UserNotifier
	Broadcasters func() []notify.BroadcastNotifier
	Locker       Locker
	Catalog      *catalog.Catalog
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Orchestrator runs the transition protocol: qualify against a consistent
// snapshot, persist stage and history atomically, run the entry action inside
// the same transaction, notify after commit.
type Orchestrator struct {
	deps      Deps
	gatherer  *gatherer
	qualifier *Qualifier
	registry  map[int]ActionFunc
	tracer    trace.Tracer
}

func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps: deps,
		gatherer: &gatherer{
			cases:    deps.Cases,
			docs:     deps.Docs,
			meetings: deps.Meetings,
			users:    deps.Users,
			required: deps.Catalog.DocTypesForConsideration,
		},
		qualifier: NewQualifier(),
		registry:  NewRegistry(),
		tracer:    otel.Tracer("appealboard/stage"),
	}
}

// Advance attempts one stage transition for the case. It returns nil when the
// case does not qualify for a new step; callers treat nil as a quiet outcome,
// not an error. Advance never moves a case backwards and never performs more
// than one step.
func (o *Orchestrator) Advance(ctx context.Context, caseID id.CaseID) (*Transition, error) {
	start := time.Now()
	defer o.deps.Metrics.ObserveAdvance(start)

	ctx, span := o.tracer.Start(ctx, "stage.transition",
		trace.WithAttributes(attribute.String("case.id", caseID.String())))
	defer span.End()

	release, err := o.deps.Locker.Acquire(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock case for transition")
	}
	defer release()

	c, err := o.deps.Cases.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}

	if c.Suspended() {
		o.deps.Logger.InfoContext(ctx, "transition skipped: case suspended",
			"case_id", c.ID, "stage_code", c.StageCode,
			"stopped", c.Stopped, "paused", c.Paused, "archived", c.Archived,
		)
		return nil, nil
	}

	facts, err := o.gatherer.gather(ctx, c)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to gather case facts")
	}

	target := o.qualifier.Qualify(facts)
	span.SetAttributes(
		attribute.Int("stage.from", c.StageCode),
		attribute.Int("stage.to", target),
	)

	if target == c.StageCode {
		return nil, nil
	}
	if target == catalog.BaseStageCode {
		if c.StageCode > o.qualifier.MaxTarget() {
			// The stored stage is beyond anything this engine can award, so
			// it was set by hand or by a code path that no longer exists.
			// The stage never regresses; surface it and leave the case
			// alone.
			o.deps.Logger.WarnContext(ctx, "stage inconsistency detected",
				"case_id", c.ID, "stage_code", c.StageCode,
			)
			o.deps.Metrics.Inconsistencies.Inc()
		} else {
			o.deps.Logger.DebugContext(ctx, "no qualifying step; case is waiting",
				"case_id", c.ID, "stage_code", c.StageCode,
			)
		}
		return nil, nil
	}

	step, ok := o.deps.Catalog.Step(target)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "qualified step missing from catalog")
	}
	action, ok := o.registry[target]
	if !ok {
		// A step without an entry action is a logged no-op: the stage is
		// not persisted either, so the condition stays visible on re-runs.
		o.deps.Logger.WarnContext(ctx, "no entry action registered for step",
			"case_id", c.ID, "stage_code", target,
		)
		o.deps.Metrics.RecordMissingAction(target)
		return nil, nil
	}

	var result ActionResult
	from := c.StageCode
	err = o.deps.Cases.RunInTx(ctx, func(ctx context.Context) error {
		if err := o.deps.Cases.SetStage(ctx, c.ID, target); err != nil {
			return err
		}
		if err := o.deps.Cases.AddHistory(ctx, &casemodels.HistoryEntry{
			CaseID:    c.ID,
			Action:    historyLine(step.Title, step.Code),
			UserID:    requestcontext.UserID(ctx),
			CreatedAt: requestcontext.Now(ctx),
		}); err != nil {
			return err
		}

		// Re-read inside the transaction so the entry action sees the stage
		// it is entering plus everything the trigger wrote.
		c.StageCode = target
		facts, err = o.gatherer.gather(ctx, c)
		if err != nil {
			return err
		}

		result, err = action(ctx, ActionDeps{
			Cases:  o.deps.Cases,
			Docs:   o.deps.DocCreator,
			Logger: o.deps.Logger,
		}, facts)
		return err
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stage transition failed")
	}

	o.deps.Metrics.RecordTransition(from, target)
	o.deps.Logger.InfoContext(ctx, "stage transition committed",
		"case_id", c.ID, "from", from, "to", target, "title", step.Title,
	)

	o.notifyAll(ctx, facts, step.Title, result)

	return &Transition{CaseID: c.ID, From: from, To: target, Title: step.Title}, nil
}

// notifyAll runs after the transaction commits. Failures are logged and
// counted but never undo the transition.
func (o *Orchestrator) notifyAll(ctx context.Context, facts *Facts, title string, result ActionResult) {
	generic := genericMessage(facts.Case, title)
	actingUser := requestcontext.UserID(ctx)

	if !actingUser.IsNil() {
		if err := o.deps.UserNotifier.Notify(ctx, generic, actingUser); err != nil {
			o.deps.Metrics.NotifyFailures.Inc()
			o.deps.Logger.ErrorContext(ctx, "acting-user notification failed",
				"case_id", facts.Case.ID, "error", err)
		}
	}

	audience := o.broadcastAudience(facts, actingUser)
	for _, b := range o.deps.Broadcasters() {
		if len(audience) > 0 {
			b.SetAddressees(audience)
			if err := b.Notify(ctx, generic, notify.LevelInfo); err != nil {
				o.deps.Metrics.NotifyFailures.Inc()
				o.deps.Logger.ErrorContext(ctx, "generic broadcast failed",
					"case_id", facts.Case.ID, "error", err)
			}
		}
		if len(result.Addressees) > 0 {
			b.SetAddressees(result.Addressees)
			if err := b.Notify(ctx, result.Message, notify.LevelInfo); err != nil {
				o.deps.Metrics.NotifyFailures.Inc()
				o.deps.Logger.ErrorContext(ctx, "role broadcast failed",
					"case_id", facts.Case.ID, "error", err)
			}
		}
	}
}

// broadcastAudience is everyone attached to the case plus the board
// leadership, deduplicated. The acting user is excluded here; they are
// reached through the current-user notifier.
func (o *Orchestrator) broadcastAudience(facts *Facts, actingUser id.UserID) []id.UserID {
	seen := map[id.UserID]bool{actingUser: true}
	var out []id.UserID
	add := func(userID id.UserID) {
		if userID.IsNil() || seen[userID] {
			return
		}
		seen[userID] = true
		out = append(out, userID)
	}

	for _, m := range facts.Collegium {
		add(m.PersonID)
	}
	if facts.Case.SecretaryID != nil {
		add(*facts.Case.SecretaryID)
	}
	if facts.Case.ExpertID != nil {
		add(*facts.Case.ExpertID)
	}
	if facts.Case.PapersOwnerID != nil {
		add(*facts.Case.PapersOwnerID)
	}
	for userID := range facts.Heads {
		add(userID)
	}
	return out
}
