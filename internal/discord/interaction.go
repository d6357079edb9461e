package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/pkg/cmd"
)

// interactionAPI is the slice of *discordgo.Session replies go through.
type interactionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Interaction adapts a gateway interaction to cmd.Interaction and remembers
// whether the initial response has been sent.
type Interaction struct {
	api   interactionAPI
	event *discordgo.InteractionCreate

	mu       sync.Mutex
	replied  bool
	deferred bool
}

var _ cmd.Interaction = (*Interaction)(nil)

// NewInteraction wraps an incoming interaction event.
func NewInteraction(s *discordgo.Session, e *discordgo.InteractionCreate) *Interaction {
	return &Interaction{api: s, event: e}
}

// Event returns the raw gateway event.
func (i *Interaction) Event() *discordgo.InteractionCreate { return i.event }

func (i *Interaction) ID() string { return i.event.ID }

func (i *Interaction) isCommand() bool {
	return i.event.Interaction != nil && i.event.Type == discordgo.InteractionApplicationCommand
}

func (i *Interaction) CommandName() string {
	if !i.isCommand() {
		return ""
	}
	return i.event.ApplicationCommandData().Name
}

func (i *Interaction) IsChatInput() bool {
	return i.isCommand() && i.event.ApplicationCommandData().CommandType == discordgo.ChatApplicationCommand
}

// StringOption returns a top-level argument rendered as a string.
func (i *Interaction) StringOption(name string) (string, bool) {
	if !i.isCommand() {
		return "", false
	}
	for _, o := range i.event.ApplicationCommandData().Options {
		if o == nil || o.Name != name {
			continue
		}
		if o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue(), true
		}
		return fmt.Sprint(o.Value), true
	}
	return "", false
}

func (i *Interaction) GuildID() string   { return i.event.GuildID }
func (i *Interaction) ChannelID() string { return i.event.ChannelID }

func (i *Interaction) UserID() string {
	switch {
	case i.event.Member != nil && i.event.Member.User != nil:
		return i.event.Member.User.ID
	case i.event.User != nil:
		return i.event.User.ID
	}
	return ""
}

func (i *Interaction) Replied() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.replied
}

func (i *Interaction) Deferred() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.deferred
}

func (i *Interaction) Reply(ctx context.Context, r cmd.Response) error {
	data := &discordgo.InteractionResponseData{Content: r.Content}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := i.api.InteractionRespond(i.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}

	i.mu.Lock()
	i.replied = true
	i.mu.Unlock()
	return nil
}

func (i *Interaction) Defer(ctx context.Context, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := i.api.InteractionRespond(i.event.Interaction, resp, discordgo.WithContext(ctx)); err != nil {
		return err
	}

	i.mu.Lock()
	i.deferred = true
	i.mu.Unlock()
	return nil
}

func (i *Interaction) FollowUp(ctx context.Context, r cmd.Response) error {
	params := &discordgo.WebhookParams{Content: r.Content}
	if r.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := i.api.FollowupMessageCreate(i.event.Interaction, true, params, discordgo.WithContext(ctx))
	return err
}

// Session returns the live session a Discord invocation carries.
func Session(inv *cmd.Invocation) (*discordgo.Session, bool) {
	s, ok := inv.Client.(*discordgo.Session)
	return s, ok
}

// RawInteraction returns the gateway event behind a Discord invocation.
func RawInteraction(inv *cmd.Invocation) (*discordgo.InteractionCreate, bool) {
	i, ok := inv.Interaction.(*Interaction)
	if !ok {
		return nil, false
	}
	return i.event, true
}
