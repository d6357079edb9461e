// Package reconcile computes and applies the create/update/delete operations
// that make a remote command registry match the local manifest.
package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// Action is an applied (or skipped) operation as recorded in a Report.
type Action struct {
	Op      string `json:"op"`
	Name    string `json:"name"`
	ID      string `json:"id,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Report summarises one sync pass.
type Report struct {
	RunID       string    `json:"run_id"`
	Scope       string    `json:"scope"`
	Fingerprint string    `json:"fingerprint"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Actions     []Action  `json:"actions"`
	Error       string    `json:"error,omitempty"`
}

// Mutations counts the actions that changed the registry.
func (r *Report) Mutations() int {
	n := 0
	for _, a := range r.Actions {
		if a.Op != OpNoOp.String() {
			n++
		}
	}
	return n
}

// Reconciler syncs a local manifest into one registry scope.
type Reconciler struct {
	registry Registry
	scope    string
	log      logging.Logger
	now      func() time.Time
}

// New returns a Reconciler. scope is informational ("global" or a guild id).
func New(registry Registry, scope string, log logging.Logger) *Reconciler {
	return &Reconciler{
		registry: registry,
		scope:    scope,
		log:      logging.OrNop(log),
		now:      time.Now,
	}
}

// Preview fetches the remote snapshot and returns the plan without applying it.
func (r *Reconciler) Preview(ctx context.Context, local []*cmd.Definition) ([]Operation, error) {
	remote, err := r.registry.FetchAll(ctx)
	if err != nil {
		return nil, &RegistryError{Op: "fetch", Err: err}
	}
	return Plan(local, remote), nil
}

// Reconcile fetches the remote snapshot once, plans and applies operations
// sequentially in manifest order. The first failed registry call aborts the
// pass; operations applied before it stay applied.
func (r *Reconciler) Reconcile(ctx context.Context, local []*cmd.Definition) (*Report, error) {
	report := &Report{
		RunID:       uuid.NewString(),
		Scope:       r.scope,
		Fingerprint: Fingerprint(local),
		StartedAt:   r.now(),
		Actions:     []Action{},
	}

	ops, err := r.Preview(ctx, local)
	if err != nil {
		return r.fail(report, err)
	}

	for _, op := range ops {
		if err := r.apply(ctx, &op); err != nil {
			return r.fail(report, err)
		}
		report.Actions = append(report.Actions, Action{
			Op:      op.Kind.String(),
			Name:    op.Name,
			ID:      op.ID,
			Skipped: op.Skipped,
		})
	}

	report.FinishedAt = r.now()
	r.log.Info("Commands synced", "scope", r.scope, "changes", report.Mutations(), "run", report.RunID)
	return report, nil
}

func (r *Reconciler) apply(ctx context.Context, op *Operation) error {
	switch op.Kind {
	case OpCreate:
		id, err := r.registry.Create(ctx, op.Definition)
		if err != nil {
			return &RegistryError{Op: "create", Name: op.Name, Err: err}
		}
		op.ID = id
		r.log.Info("Registered command", "command", op.Name, "scope", r.scope)

	case OpUpdate:
		if err := r.registry.Edit(ctx, op.ID, op.Definition); err != nil {
			return &RegistryError{Op: "update", Name: op.Name, ID: op.ID, Err: err}
		}
		r.log.Info("Edited command", "command", op.Name, "scope", r.scope)

	case OpDelete:
		if err := r.registry.Delete(ctx, op.ID); err != nil {
			return &RegistryError{Op: "delete", Name: op.Name, ID: op.ID, Err: err}
		}
		r.log.Info("Deleted command", "command", op.Name, "scope", r.scope)

	case OpNoOp:
		if op.Skipped {
			r.log.Info("Skipping registering command as it's set to delete", "command", op.Name, "scope", r.scope)
		}
	}
	return nil
}

func (r *Reconciler) fail(report *Report, err error) (*Report, error) {
	report.FinishedAt = r.now()
	report.Error = err.Error()
	r.log.Error("Error registering commands", "scope", r.scope, "err", err)
	return report, err
}
