package middleware

import (
	"context"

	"github.com/keshon/commandsync/internal/dispatch"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// GuildOnly blocks commands used in direct messages unless the command
// explicitly allows DMs.
func GuildOnly(log logging.Logger) dispatch.Gate {
	log = logging.OrNop(log)
	return dispatch.GateFunc(func(ctx context.Context, i cmd.Interaction, c *cmd.Command, _ cmd.Host) (cmd.Verdict, error) {
		if i.GuildID() != "" {
			return cmd.Continue, nil
		}
		if c.DMPermission != nil && *c.DMPermission {
			return cmd.Continue, nil
		}
		return deny(ctx, log, i, "This command can only be used in a server.")
	})
}
