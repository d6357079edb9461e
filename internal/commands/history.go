package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/commandsync/pkg/cmd"
)

func (d Deps) commandLog(ctx context.Context, inv *cmd.Invocation) error {
	records, err := d.Store.CommandHistory(inv.Interaction.GuildID())
	if err != nil {
		return fmt.Errorf("read command history: %w", err)
	}
	if len(records) == 0 {
		return reply(ctx, inv, "No command logs found.")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-19s\t%-20s\t%-20s\t%s\n", "# Datetime", "# User", "# Channel", "# Command"))

	// latest first
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		status := ""
		if r.Failed {
			status = " (failed)"
		}
		line := fmt.Sprintf("%-19s\t%-20s\t%-20s\t/%s%s\n",
			r.Datetime.Format("2006-01-02 15:04:05"), r.UserID, r.ChannelID, r.Command, status)

		if b.Len()+len(line) > maxContentLength {
			break
		}
		b.WriteString(line)
	}

	return reply(ctx, inv, codeBlock(b.String()))
}
