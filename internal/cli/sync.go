package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/internal/storage"
)

// NewSyncCommand creates the sync command. Every report, failed ones
// included, is recorded in the sync ledger.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	var scopes scopeFlags

	c := &cobra.Command{
		Use:   "sync",
		Short: "Create, update and delete registry commands to match the definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, defs, err := prepare(rootOpts)
			if err != nil {
				return err
			}

			store, err := storage.New(cfg.StoragePath, rootOpts.log())
			if err != nil {
				return err
			}
			defer store.Close()

			guilds := scopes.resolve(cfg)
			reports := make([]*reconcile.Report, len(guilds))
			runErr := eachScope(cmd.Context(), guilds, func(ctx context.Context, i int, guildID string) error {
				registry, err := rootOpts.Registry(ctx, cfg, guildID)
				if err != nil {
					return err
				}
				report, err := reconcile.New(registry, discord.Scope(guildID), rootOpts.log()).Reconcile(ctx, defs)
				reports[i] = report
				if report != nil {
					if lerr := store.RecordSync(report); lerr != nil {
						rootOpts.log().Warn("Failed to record sync report", "run", report.RunID, "err", lerr)
					}
				}
				return err
			})

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, reports); err != nil {
					return err
				}
				return runErr
			}
			for _, r := range reports {
				if r == nil {
					continue
				}
				fmt.Fprintf(out, "%s: %d change(s), run %s\n", r.Scope, r.Mutations(), r.RunID)
				for _, a := range r.Actions {
					if a.Op != reconcile.OpNoOp.String() {
						fmt.Fprintf(out, "  %s %s\n", a.Op, a.Name)
					}
				}
				if r.Error != "" {
					fmt.Fprintf(out, "  error: %s\n", r.Error)
				}
			}
			return runErr
		},
	}

	scopes.register(c)
	return c
}
