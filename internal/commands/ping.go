package commands

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/pkg/cmd"
)

func ping(ctx context.Context, inv *cmd.Invocation) error {
	msg := "🏓 Pong!"
	if s, ok := discord.Session(inv); ok && s != nil {
		msg = fmt.Sprintf("🏓 Pong! Response time: `%dms`", s.HeartbeatLatency().Milliseconds())
	}
	return inv.Interaction.Reply(ctx, cmd.Response{Content: msg})
}
