package reconcile

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Remote is the registry's stored view of a command.
type Remote struct {
	ID string
	cmd.Definition
}

// Registry is the remote command store, keyed by command name. The reconciler
// only reads from it and requests mutations.
type Registry interface {
	FetchAll(ctx context.Context) (map[string]*Remote, error)
	Create(ctx context.Context, def *cmd.Definition) (string, error)
	Edit(ctx context.Context, id string, def *cmd.Definition) error
	Delete(ctx context.Context, id string) error
}

// RegistryError is a failed registry call. It aborts the sync pass.
type RegistryError struct {
	Op   string // fetch, create, update, delete
	Name string
	ID   string
	Err  error
}

func (e *RegistryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("registry %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("registry %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }
