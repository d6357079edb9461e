package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/storage"
)

// NewGroupCommand creates the group command for toggling command groups of
// a guild without going through Discord.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "group",
		Short: "Enable, disable or list command groups of a guild",
	}

	withStore := func(fn func(store *storage.Storage, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config()
			if err != nil {
				return err
			}
			store, err := storage.New(cfg.StoragePath, rootOpts.log())
			if err != nil {
				return err
			}
			defer store.Close()
			return fn(store, cmd, args)
		}
	}

	c.AddCommand(&cobra.Command{
		Use:   "disable <guild> <group>",
		Short: "Disable a command group",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(store *storage.Storage, cmd *cobra.Command, args []string) error {
			if args[1] == "core" {
				return fmt.Errorf("the core group cannot be disabled")
			}
			if err := store.DisableGroup(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "group %s disabled in %s\n", args[1], args[0])
			return nil
		}),
	})

	c.AddCommand(&cobra.Command{
		Use:   "enable <guild> <group>",
		Short: "Enable a command group",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(store *storage.Storage, cmd *cobra.Command, args []string) error {
			if err := store.EnableGroup(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "group %s enabled in %s\n", args[1], args[0])
			return nil
		}),
	})

	c.AddCommand(&cobra.Command{
		Use:   "list <guild>",
		Short: "List disabled command groups",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(store *storage.Storage, cmd *cobra.Command, args []string) error {
			groups, err := store.DisabledGroups(args[0])
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				if groups == nil {
					groups = []string{}
				}
				return writeJSON(cmd.OutOrStdout(), groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no disabled groups")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(groups, "\n"))
			return nil
		}),
	})

	return c
}
