package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/internal/reconcile"
)

// ScopePlan is the planned operations for one scope.
type ScopePlan struct {
	Scope      string   `json:"scope"`
	Changes    int      `json:"changes"`
	Operations []string `json:"operations"`
	Error      string   `json:"error,omitempty"`
}

// NewPlanCommand creates the plan command: a read-only preview of sync.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	var scopes scopeFlags

	c := &cobra.Command{
		Use:   "plan",
		Short: "Show what sync would change without touching the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, defs, err := prepare(rootOpts)
			if err != nil {
				return err
			}

			guilds := scopes.resolve(cfg)
			plans := make([]ScopePlan, len(guilds))
			runErr := eachScope(cmd.Context(), guilds, func(ctx context.Context, i int, guildID string) error {
				plans[i] = ScopePlan{Scope: discord.Scope(guildID), Operations: []string{}}

				registry, err := rootOpts.Registry(ctx, cfg, guildID)
				if err != nil {
					plans[i].Error = err.Error()
					return err
				}
				ops, err := reconcile.New(registry, plans[i].Scope, rootOpts.log()).Preview(ctx, defs)
				if err != nil {
					plans[i].Error = err.Error()
					return err
				}
				for _, op := range ops {
					if op.Mutates() {
						plans[i].Changes++
					}
					if op.Mutates() || op.Skipped {
						plans[i].Operations = append(plans[i].Operations, op.String())
					}
				}
				return nil
			})

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, plans); err != nil {
					return err
				}
				return runErr
			}
			for _, p := range plans {
				if p.Error != "" {
					fmt.Fprintf(out, "%s: error: %s\n", p.Scope, p.Error)
					continue
				}
				fmt.Fprintf(out, "%s: %d change(s)\n", p.Scope, p.Changes)
				for _, op := range p.Operations {
					fmt.Fprintf(out, "  %s\n", op)
				}
			}
			return runErr
		},
	}

	scopes.register(c)
	return c
}
