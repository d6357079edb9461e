package middleware

import (
	"context"
	"time"

	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/internal/storage"
	"github.com/keshon/commandsync/pkg/cmd"
)

// HistoryWriter stores executed commands.
type HistoryWriter interface {
	AppendCommandHistory(guildID string, rec storage.CommandHistoryRecord) error
}

// WithCommandLog records every guild command run after it finishes. A storage
// failure is logged and never changes the command's result.
func WithCommandLog(store HistoryWriter, log logging.Logger) cmd.Middleware {
	log = logging.OrNop(log)
	return func(c *cmd.Command) *cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation, next cmd.RunFunc) error {
			err := next(ctx, inv)

			i := inv.Interaction
			if i == nil || i.GuildID() == "" {
				return err
			}
			rec := storage.CommandHistoryRecord{
				ChannelID: i.ChannelID(),
				UserID:    i.UserID(),
				Command:   c.Name,
				Failed:    err != nil,
				Datetime:  time.Now().UTC(),
			}
			if e := store.AppendCommandHistory(i.GuildID(), rec); e != nil {
				log.Warn("Failed to log command", "command", c.Name, "err", e)
			}
			return err
		})
	}
}
