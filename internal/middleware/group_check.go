package middleware

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/internal/dispatch"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// GroupChecker reports whether a command group is disabled in a guild.
type GroupChecker interface {
	IsGroupDisabled(guildID, group string) (bool, error)
}

// GroupEnabled blocks commands whose MetaGroup is disabled in the guild.
func GroupEnabled(store GroupChecker, log logging.Logger) dispatch.Gate {
	log = logging.OrNop(log)
	return dispatch.GateFunc(func(ctx context.Context, i cmd.Interaction, c *cmd.Command, _ cmd.Host) (cmd.Verdict, error) {
		group, _ := c.Metadata[MetaGroup].(string)
		if group == "" || i.GuildID() == "" {
			return cmd.Continue, nil
		}

		disabled, err := store.IsGroupDisabled(i.GuildID(), group)
		if err != nil {
			return cmd.Continue, fmt.Errorf("check group %s: %w", group, err)
		}
		if !disabled {
			return cmd.Continue, nil
		}
		return deny(ctx, log, i, fmt.Sprintf("Commands of the %q group are disabled on this server.", group))
	})
}
