package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/pkg/cmd"
)

// commandAPI is the slice of *discordgo.Session the registry needs.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandEdit(appID, guildID, cmdID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// CommandRegistry is the platform command registry for one scope: the
// application's global commands, or one guild's when GuildID is set.
type CommandRegistry struct {
	api     commandAPI
	appID   string
	guildID string
}

var _ reconcile.Registry = (*CommandRegistry)(nil)

// NewCommandRegistry binds the registry to an application and scope.
func NewCommandRegistry(s *discordgo.Session, appID, guildID string) *CommandRegistry {
	return &CommandRegistry{api: s, appID: appID, guildID: guildID}
}

// Scope names the registry scope the way sync reports record it.
func (r *CommandRegistry) Scope() string {
	return Scope(r.guildID)
}

// Scope maps a guild ID to a registry scope name; empty means global.
func Scope(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return guildID
}

func (r *CommandRegistry) FetchAll(ctx context.Context) (map[string]*reconcile.Remote, error) {
	list, err := r.api.ApplicationCommands(r.appID, r.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	remote := make(map[string]*reconcile.Remote, len(list))
	for _, ac := range list {
		// context menu commands share names with slash commands
		if ac == nil || (ac.Type != 0 && ac.Type != discordgo.ChatApplicationCommand) {
			continue
		}
		remote[ac.Name] = &reconcile.Remote{ID: ac.ID, Definition: fromApplicationCommand(ac)}
	}
	return remote, nil
}

func (r *CommandRegistry) Create(ctx context.Context, def *cmd.Definition) (string, error) {
	ac, err := r.api.ApplicationCommandCreate(r.appID, r.guildID, toApplicationCommand(def), discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	if ac == nil {
		return "", fmt.Errorf("empty response creating %q", def.Name)
	}
	return ac.ID, nil
}

func (r *CommandRegistry) Edit(ctx context.Context, id string, def *cmd.Definition) error {
	_, err := r.api.ApplicationCommandEdit(r.appID, r.guildID, id, toApplicationCommand(def), discordgo.WithContext(ctx))
	return err
}

func (r *CommandRegistry) Delete(ctx context.Context, id string) error {
	return r.api.ApplicationCommandDelete(r.appID, r.guildID, id, discordgo.WithContext(ctx))
}

// ApplicationID resolves the bot's application ID, preferring the gateway
// state when the session is already connected.
func ApplicationID(ctx context.Context, s *discordgo.Session) (string, error) {
	if s.State != nil && s.State.User != nil && s.State.User.ID != "" {
		return s.State.User.ID, nil
	}
	u, err := s.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching bot user: %w", err)
	}
	return u.ID, nil
}
