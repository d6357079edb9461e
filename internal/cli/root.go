// Package cli implements the commandsync command line: offline checks of the
// definition files and out-of-band sync against the Discord registry.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/commands"
	"github.com/keshon/commandsync/internal/config"
	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/internal/manifest"
	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/pkg/cmd"
)

// RegistryFactory opens the remote registry of one scope; empty guildID is
// the global scope.
type RegistryFactory func(ctx context.Context, cfg *config.Config, guildID string) (reconcile.Registry, error)

// RootOptions holds global flags and the seams tests replace.
type RootOptions struct {
	Format       string // "text" | "json"
	EnvFile      string
	CommandsPath string

	LoadConfig func(envFile string) (*config.Config, error)
	Registry   RegistryFactory
	Logger     logging.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command with production defaults.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(&RootOptions{})
}

// NewRootCommandWith creates the root command around opts. Nil seams get
// their production implementation.
func NewRootCommandWith(opts *RootOptions) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = loadConfig
	}
	if opts.Registry == nil {
		opts.Registry = discordRegistry
	}

	c := &cobra.Command{
		Use:   "commandsync",
		Short: "Keep Discord slash commands in sync with their definition files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Logger == nil {
				opts.Logger = logging.New(logging.Options{Out: cmd.ErrOrStderr()})
			}
			return nil
		},
		SilenceUsage: true,
	}

	c.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	c.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load before reading the environment")
	c.PersistentFlags().StringVar(&opts.CommandsPath, "commands", "", "definition directory (default COMMANDS_PATH)")

	c.AddCommand(NewValidateCommand(opts))
	c.AddCommand(NewDocsCommand(opts))
	c.AddCommand(NewPlanCommand(opts))
	c.AddCommand(NewSyncCommand(opts))
	c.AddCommand(NewLedgerCommand(opts))
	c.AddCommand(NewGroupCommand(opts))

	return c
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile == "" {
		return config.Load()
	}
	return config.Load(envFile)
}

func discordRegistry(ctx context.Context, cfg *config.Config, guildID string) (reconcile.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	appID, err := discord.ApplicationID(ctx, s)
	if err != nil {
		return nil, err
	}
	return discord.NewCommandRegistry(s, appID, guildID), nil
}

// config resolves configuration with the --commands flag applied.
func (o *RootOptions) config() (*config.Config, error) {
	cfg, err := o.LoadConfig(o.EnvFile)
	if err != nil {
		return nil, err
	}
	if o.CommandsPath != "" {
		cfg.CommandsPath = o.CommandsPath
	}
	return cfg, nil
}

// loadCommands reads the definition directory. Handlers are bound against
// the bot's real table so unbound names are caught here as well.
func loadCommands(dir string) ([]*cmd.Command, []error) {
	return manifest.Load(dir, commands.Handlers(commands.Deps{}))
}

func definitions(cmds []*cmd.Command) []*cmd.Definition {
	defs := make([]*cmd.Definition, 0, len(cmds))
	for _, c := range cmds {
		defs = append(defs, &c.Definition)
	}
	return defs
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *RootOptions) log() logging.Logger { return logging.OrNop(o.Logger) }
