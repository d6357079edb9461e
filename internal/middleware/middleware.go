// Package middleware holds the stock validation gates and command wrappers
// wired by the bot binary.
package middleware

import (
	"context"

	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// Metadata keys read by the gates.
const (
	MetaDevOnly = "devOnly"
	MetaGroup   = "group"
)

// deny answers the user ephemerally and blocks the command. The gate has
// already decided, so a failed notification is only logged.
func deny(ctx context.Context, log logging.Logger, i cmd.Interaction, msg string) (cmd.Verdict, error) {
	r := cmd.Response{Content: msg, Ephemeral: true}
	var err error
	if i.Replied() || i.Deferred() {
		err = i.FollowUp(ctx, r)
	} else {
		err = i.Reply(ctx, r)
	}
	if err != nil {
		log.Warn("Failed to send denial", "command", i.CommandName(), "err", err)
	}
	return cmd.Stop, nil
}
