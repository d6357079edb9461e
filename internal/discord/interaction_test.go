package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/pkg/cmd"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
	followUps []*discordgo.WebhookParams
	err       error
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followUps = append(f.followUps, data)
	return &discordgo.Message{}, nil
}

func slashEvent(name string, kind discordgo.ApplicationCommandType) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i-1",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "g-1",
		ChannelID: "c-1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "u-1"}},
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, CommandType: kind},
	}}
}

func TestInteraction_Accessors(t *testing.T) {
	t.Parallel()

	i := &Interaction{api: &fakeResponder{}, event: slashEvent("ping", discordgo.ChatApplicationCommand)}
	assert.Equal(t, "i-1", i.ID())
	assert.Equal(t, "ping", i.CommandName())
	assert.True(t, i.IsChatInput())
	assert.Equal(t, "g-1", i.GuildID())
	assert.Equal(t, "u-1", i.UserID())

	menu := &Interaction{event: slashEvent("Report", discordgo.MessageApplicationCommand)}
	assert.False(t, menu.IsChatInput())

	component := &Interaction{event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: "u-2"},
	}}}
	assert.False(t, component.IsChatInput())
	assert.Empty(t, component.CommandName())
	assert.Equal(t, "u-2", component.UserID())
}

func TestInteraction_ReplyTracksState(t *testing.T) {
	t.Parallel()

	api := &fakeResponder{}
	i := &Interaction{api: api, event: slashEvent("ping", discordgo.ChatApplicationCommand)}
	ctx := context.Background()

	require.NoError(t, i.Reply(ctx, cmd.Response{Content: "pong", Ephemeral: true}))
	assert.True(t, i.Replied())
	assert.False(t, i.Deferred())
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.responses[0].Data.Flags)

	require.NoError(t, i.FollowUp(ctx, cmd.Response{Content: "again"}))
	require.Len(t, api.followUps, 1)
	assert.Equal(t, "again", api.followUps[0].Content)
	assert.Zero(t, api.followUps[0].Flags)
}

func TestInteraction_DeferAndFailure(t *testing.T) {
	t.Parallel()

	api := &fakeResponder{}
	i := &Interaction{api: api, event: slashEvent("ping", discordgo.ChatApplicationCommand)}
	require.NoError(t, i.Defer(context.Background(), true))
	assert.True(t, i.Deferred())
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, api.responses[0].Type)

	failing := &Interaction{api: &fakeResponder{err: errors.New("unknown interaction")}, event: slashEvent("ping", discordgo.ChatApplicationCommand)}
	assert.Error(t, failing.Reply(context.Background(), cmd.Response{Content: "x"}))
	assert.False(t, failing.Replied())
}

func TestInteraction_StringOption(t *testing.T) {
	t.Parallel()

	e := slashEvent("cmd-toggle", discordgo.ChatApplicationCommand)
	e.Data = discordgo.ApplicationCommandInteractionData{
		Name:        "cmd-toggle",
		CommandType: discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "group", Type: discordgo.ApplicationCommandOptionString, Value: "fun"},
			{Name: "count", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
		},
	}
	i := &Interaction{event: e}

	group, ok := cmd.StringOption(i, "group")
	assert.True(t, ok)
	assert.Equal(t, "fun", group)

	count, ok := i.StringOption("count")
	assert.True(t, ok)
	assert.Equal(t, "3", count)

	_, ok = i.StringOption("missing")
	assert.False(t, ok)
}
