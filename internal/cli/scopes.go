package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/config"
	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/pkg/cmd"
	"github.com/keshon/commandsync/pkg/util"
)

// scopeWorkers bounds how many registry scopes are worked on at once.
const scopeWorkers = 4

type scopeFlags struct {
	guilds []string
	global bool
}

func (f *scopeFlags) register(c *cobra.Command) {
	c.Flags().StringSliceVar(&f.guilds, "guild", nil, "guild ID to target (repeatable)")
	c.Flags().BoolVar(&f.global, "global", false, "target the global scope")
}

// resolve returns the guild IDs to target; "" is the global scope. Without
// flags the configured test guild (or global) is used.
func (f *scopeFlags) resolve(cfg *config.Config) []string {
	var out []string
	if f.global {
		out = append(out, "")
	}
	out = append(out, f.guilds...)
	if len(out) == 0 {
		out = append(out, cfg.TestGuildID)
	}
	return out
}

// prepare loads config and definitions shared by plan and sync.
func prepare(rootOpts *RootOptions) (*config.Config, []*cmd.Definition, error) {
	cfg, err := rootOpts.config()
	if err != nil {
		return nil, nil, err
	}
	loaded, errs := loadCommands(cfg.CommandsPath)
	if len(errs) > 0 {
		for _, e := range errs {
			rootOpts.log().Error("Failed to load command", "err", e)
		}
		return nil, nil, fmt.Errorf("%w: %d file(s) failed", ErrInvalid, len(errs))
	}
	return cfg, definitions(loaded), nil
}

// eachScope runs fn for every guild concurrently. A failing scope does not
// stop the others; all failures are joined.
func eachScope(ctx context.Context, guilds []string, fn func(ctx context.Context, idx int, guildID string) error) error {
	errs := make([]error, len(guilds))
	idx := make([]int, len(guilds))
	for i := range idx {
		idx[i] = i
	}

	err := util.Parallel(ctx, idx, scopeWorkers, func(ctx context.Context, i int) error {
		if err := fn(ctx, i, guilds[i]); err != nil {
			errs[i] = fmt.Errorf("scope %s: %w", discord.Scope(guilds[i]), err)
		}
		return nil
	})
	return errors.Join(append(errs, err)...)
}
