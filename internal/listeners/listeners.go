// Package listeners holds the gateway event chains the bot subscribes to.
// Chains run in Ref order, so the numeric prefixes set precedence.
package listeners

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/internal/events"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// Table returns every chain.
func Table(log logging.Logger) *events.Table {
	log = logging.OrNop(log)
	t := events.NewTable()

	t.Add("messageCreate", "00-ignore-bots", events.HandlerFunc(ignoreBots))
	t.Add("messageCreate", "10-mention-log", mentionLog(log))
	t.Add("guildCreate", "00-log-join", guildJoin(log))
	t.Add("guildDelete", "00-log-leave", guildLeave(log))
	return t
}

func firstArg[T any](args []any) (T, bool) {
	var zero T
	if len(args) == 0 {
		return zero, false
	}
	v, ok := args[0].(T)
	return v, ok
}

// ignoreBots ends the chain for messages written by bots, this one included.
func ignoreBots(_ context.Context, args []any, _ any, _ cmd.Host) (cmd.Verdict, error) {
	m, ok := firstArg[*discordgo.MessageCreate](args)
	if !ok || m.Message == nil || m.Author == nil || m.Author.Bot {
		return cmd.Stop, nil
	}
	return cmd.Continue, nil
}

func mentionLog(log logging.Logger) events.Handler {
	return events.HandlerFunc(func(_ context.Context, args []any, client any, _ cmd.Host) (cmd.Verdict, error) {
		m, ok := firstArg[*discordgo.MessageCreate](args)
		if !ok || m.Message == nil || m.Author == nil {
			return cmd.Continue, nil
		}
		s, ok := client.(*discordgo.Session)
		if !ok || s.State == nil || s.State.User == nil {
			return cmd.Continue, nil
		}

		for _, u := range m.Mentions {
			if u != nil && u.ID == s.State.User.ID {
				log.Info("Bot mentioned", "guild", m.GuildID, "channel", m.ChannelID, "user", m.Author.ID)
				break
			}
		}
		return cmd.Continue, nil
	})
}

func guildJoin(log logging.Logger) events.Handler {
	return events.HandlerFunc(func(_ context.Context, args []any, _ any, _ cmd.Host) (cmd.Verdict, error) {
		g, ok := firstArg[*discordgo.GuildCreate](args)
		if ok && g.Guild != nil {
			log.Info("Bot added to guild", "guild", g.ID, "name", g.Name)
		}
		return cmd.Continue, nil
	})
}

func guildLeave(log logging.Logger) events.Handler {
	return events.HandlerFunc(func(_ context.Context, args []any, _ any, _ cmd.Host) (cmd.Verdict, error) {
		g, ok := firstArg[*discordgo.GuildDelete](args)
		if ok && g.Guild != nil {
			log.Info("Bot removed from guild", "guild", g.ID)
		}
		return cmd.Continue, nil
	})
}
