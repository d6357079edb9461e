package middleware

import (
	"context"
	"slices"

	"github.com/keshon/commandsync/internal/dispatch"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// DevelopersOnly restricts commands flagged with MetaDevOnly to the given
// user IDs.
func DevelopersOnly(userIDs []string, log logging.Logger) dispatch.Gate {
	log = logging.OrNop(log)
	allowed := slices.Clone(userIDs)
	return dispatch.GateFunc(func(ctx context.Context, i cmd.Interaction, c *cmd.Command, _ cmd.Host) (cmd.Verdict, error) {
		if !c.Flag(MetaDevOnly) || slices.Contains(allowed, i.UserID()) {
			return cmd.Continue, nil
		}
		return deny(ctx, log, i, "You're not allowed to use this command.")
	})
}
