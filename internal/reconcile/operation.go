package reconcile

import (
	"fmt"

	"github.com/keshon/commandsync/pkg/cmd"
)

// OpKind tags an Operation.
type OpKind int

const (
	OpNoOp OpKind = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "noop"
	}
}

// Operation is one planned step against the registry. ID is the registry id
// for Update and Delete; Definition is set for Create and Update.
type Operation struct {
	Kind       OpKind
	Name       string
	ID         string
	Definition *cmd.Definition

	// Skipped marks a NoOp for a deleted command that has no remote record.
	Skipped bool
}

// Mutates reports whether applying op calls the registry.
func (op Operation) Mutates() bool {
	return op.Kind != OpNoOp
}

func (op Operation) String() string {
	switch op.Kind {
	case OpUpdate, OpDelete:
		return fmt.Sprintf("%s %s (%s)", op.Kind, op.Name, op.ID)
	case OpNoOp:
		if op.Skipped {
			return fmt.Sprintf("skip %s", op.Name)
		}
	}
	return fmt.Sprintf("%s %s", op.Kind, op.Name)
}

// Plan computes one operation per local definition, in manifest order.
// Remote commands that are absent locally are left alone: only a local
// Deleted flag removes a remote command.
func Plan(local []*cmd.Definition, remote map[string]*Remote) []Operation {
	ops := make([]Operation, 0, len(local))

	for _, def := range local {
		existing, found := remote[def.Name]

		switch {
		case found && def.Deleted:
			ops = append(ops, Operation{Kind: OpDelete, Name: def.Name, ID: existing.ID})
		case found && IsDifferent(&existing.Definition, def):
			ops = append(ops, Operation{Kind: OpUpdate, Name: def.Name, ID: existing.ID, Definition: def})
		case found:
			ops = append(ops, Operation{Kind: OpNoOp, Name: def.Name, ID: existing.ID})
		case def.Deleted:
			ops = append(ops, Operation{Kind: OpNoOp, Name: def.Name, Skipped: true})
		default:
			ops = append(ops, Operation{Kind: OpCreate, Name: def.Name, Definition: def})
		}
	}

	return ops
}
