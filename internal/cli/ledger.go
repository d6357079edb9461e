package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/commands"
	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/internal/storage"
)

// NewLedgerCommand creates the ledger command, which prints the last recorded
// sync of a scope.
func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	var scope string

	c := &cobra.Command{
		Use:   "ledger",
		Short: "Show the last recorded sync report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config()
			if err != nil {
				return err
			}
			if scope == "" {
				scope = cfg.Scope()
			}

			store, err := storage.New(cfg.StoragePath, rootOpts.log())
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.LastSync(scope)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report == nil {
				if rootOpts.Format == "json" {
					return writeJSON(out, nil)
				}
				fmt.Fprintf(out, "No sync recorded for scope %s\n", scope)
				return nil
			}

			changed := manifestChanged(cfg.CommandsPath, report)
			if rootOpts.Format == "json" {
				return writeJSON(out, struct {
					*reconcile.Report
					ManifestChanged bool `json:"manifest_changed"`
				}{report, changed})
			}
			fmt.Fprintln(out, commands.FormatReport(report))
			if changed {
				fmt.Fprintln(out, "definitions changed since this sync")
			} else {
				fmt.Fprintln(out, "definitions unchanged since this sync")
			}
			return nil
		},
	}

	c.Flags().StringVar(&scope, "scope", "", "scope to show: global or a guild ID (default from config)")
	return c
}

// manifestChanged compares the current definitions with the fingerprint the
// report was taken against. Unloadable definitions count as changed.
func manifestChanged(dir string, report *reconcile.Report) bool {
	loaded, errs := loadCommands(dir)
	if len(errs) > 0 {
		return true
	}
	return reconcile.Fingerprint(definitions(loaded)) != report.Fingerprint
}
