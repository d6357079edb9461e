package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/commandsync/pkg/cmd"
)

// coreGroup holds the commands that manage the others.
const coreGroup = "core"

func (d Deps) toggleGroup(ctx context.Context, inv *cmd.Invocation) error {
	i := inv.Interaction
	group, _ := cmd.StringOption(i, "group")
	state, _ := cmd.StringOption(i, "state")
	group = strings.TrimSpace(group)

	switch {
	case group == "":
		return reply(ctx, inv, "Pick a command group.")
	case group == coreGroup && state == "disable":
		return reply(ctx, inv, "You can't disable the `core` group. It's the backbone of the bot.")
	}

	if state == "disable" {
		if err := d.Store.DisableGroup(i.GuildID(), group); err != nil {
			return fmt.Errorf("disable group %s: %w", group, err)
		}
		return reply(ctx, inv, fmt.Sprintf("Command group `%s` disabled.", group))
	}

	if err := d.Store.EnableGroup(i.GuildID(), group); err != nil {
		return fmt.Errorf("enable group %s: %w", group, err)
	}
	return reply(ctx, inv, fmt.Sprintf("Command group `%s` enabled.", group))
}

func (d Deps) groupStatus(ctx context.Context, inv *cmd.Invocation) error {
	disabled, err := d.Store.DisabledGroups(inv.Interaction.GuildID())
	if err != nil {
		return fmt.Errorf("read disabled groups: %w", err)
	}
	if len(disabled) == 0 {
		return reply(ctx, inv, "All command groups are enabled.")
	}
	return reply(ctx, inv, "Disabled groups: `"+strings.Join(disabled, "`, `")+"`")
}
