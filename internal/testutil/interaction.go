// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Interaction is an in-memory cmd.Interaction that records what was sent.
type Interaction struct {
	InteractionID string
	Name          string
	ChatInput     bool
	Guild         string
	Channel       string
	User          string
	Options       map[string]string

	ReplyErr    error
	FollowUpErr error

	mu        sync.Mutex
	replied   bool
	deferred  bool
	Replies   []cmd.Response
	FollowUps []cmd.Response
}

// NewInteraction returns a chat-input interaction for the named command.
func NewInteraction(name string) *Interaction {
	return &Interaction{
		InteractionID: "i-" + name,
		Name:          name,
		ChatInput:     true,
		Guild:         "guild-1",
		Channel:       "channel-1",
		User:          "user-1",
	}
}

func (i *Interaction) ID() string          { return i.InteractionID }
func (i *Interaction) CommandName() string { return i.Name }
func (i *Interaction) IsChatInput() bool   { return i.ChatInput }
func (i *Interaction) GuildID() string     { return i.Guild }
func (i *Interaction) ChannelID() string   { return i.Channel }
func (i *Interaction) UserID() string      { return i.User }

func (i *Interaction) StringOption(name string) (string, bool) {
	v, ok := i.Options[name]
	return v, ok
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

func (i *Interaction) Reply(_ context.Context, r cmd.Response) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.ReplyErr != nil {
		return i.ReplyErr
	}
	i.replied = true
	i.Replies = append(i.Replies, r)
	return nil
}

func (i *Interaction) Defer(context.Context, bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.deferred = true
	return nil
}

func (i *Interaction) FollowUp(_ context.Context, r cmd.Response) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.FollowUpErr != nil {
		return i.FollowUpErr
	}
	i.FollowUps = append(i.FollowUps, r)
	return nil
}

// Sent counts replies and follow-ups together.
func (i *Interaction) Sent() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.Replies) + len(i.FollowUps)
}

// Host is a static cmd.Host.
type Host struct {
	ClientValue any
	CommandList []*cmd.Command
}

func (h *Host) Client() any              { return h.ClientValue }
func (h *Host) Commands() []*cmd.Command { return h.CommandList }
