package dispatch

import (
	"context"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Gate runs before a command handler. Returning cmd.Stop blocks the command;
// returning an error is treated as a dispatch failure.
type Gate interface {
	Check(ctx context.Context, i cmd.Interaction, c *cmd.Command, host cmd.Host) (cmd.Verdict, error)
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context, i cmd.Interaction, c *cmd.Command, host cmd.Host) (cmd.Verdict, error)

func (f GateFunc) Check(ctx context.Context, i cmd.Interaction, c *cmd.Command, host cmd.Host) (cmd.Verdict, error) {
	return f(ctx, i, c, host)
}
