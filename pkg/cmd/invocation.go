// Package cmd provides a transport-agnostic command core: a command is a
// registrable Definition plus a Run function. How it is registered with the
// platform and dispatched is defined by adapters that consume this package.
package cmd

import "context"

// Response is the minimal reply any adapter can render.
type Response struct {
	Content   string
	Ephemeral bool
}

// Interaction is an incoming command invocation as seen by gates and handlers.
// Adapters track whether a reply or deferral has already been sent.
type Interaction interface {
	ID() string
	CommandName() string
	IsChatInput() bool
	GuildID() string
	ChannelID() string
	UserID() string

	Replied() bool
	Deferred() bool
	Reply(ctx context.Context, r Response) error
	Defer(ctx context.Context, ephemeral bool) error
	FollowUp(ctx context.Context, r Response) error
}

// Host is the composition root handed to every gate and handler. It is built
// once at startup and is read-only afterward.
type Host interface {
	Client() any
	Commands() []*Command
}

// Invocation carries what a command runner receives. Client is the adapter's
// live client (a *discordgo.Session for the Discord adapter).
type Invocation struct {
	Interaction Interaction
	Client      any
	Host        Host
}

// RunFunc executes a command.
type RunFunc func(ctx context.Context, inv *Invocation) error

// Command is a Definition bound to its handler.
type Command struct {
	Definition
	Run RunFunc
}

// Validate checks the invariants every registered command must hold.
func (c *Command) Validate() error {
	switch {
	case c.Name == "":
		return errMissing("name")
	case c.Description == "":
		return errMissing("description")
	case c.Run == nil && !c.Deleted:
		return errMissing("run function")
	}
	return nil
}

// Runnable reports whether the command can be dispatched.
func (c *Command) Runnable() bool {
	return !c.Deleted && c.Run != nil
}

// OptionReader is implemented by interactions that expose argument values.
type OptionReader interface {
	StringOption(name string) (string, bool)
}

// StringOption returns the named argument of i as a string, if i carries
// arguments and the user supplied it.
func StringOption(i Interaction, name string) (string, bool) {
	r, ok := i.(OptionReader)
	if !ok {
		return "", false
	}
	return r.StringOption(name)
}
