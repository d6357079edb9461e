package cmd

import "context"

// Middleware wraps a command (e.g. logging, history). The wrapped value is
// still a *Command with the same Definition.
type Middleware func(*Command) *Command

// Apply applies middlewares in order; the first in the list is the innermost.
func Apply(c *Command, mws ...Middleware) *Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Wrap returns a copy of c whose Run is replaced by run. Deleted commands
// have nothing to wrap and are returned as is.
func Wrap(c *Command, run func(ctx context.Context, inv *Invocation, next RunFunc) error) *Command {
	if c.Run == nil {
		return c
	}
	next := c.Run
	wrapped := *c
	wrapped.Run = func(ctx context.Context, inv *Invocation) error {
		return run(ctx, inv, next)
	}
	return &wrapped
}
