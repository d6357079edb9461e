// Package dispatch routes one incoming interaction to its command through an
// ordered chain of gates, isolating every failure from the caller.
package dispatch

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// ErrorMessage is the reply users see when a command fails.
const ErrorMessage = "There was an error executing this command!"

// Lookup finds a command by name. *cmd.Registry satisfies it.
type Lookup interface {
	Get(name string) (*cmd.Command, bool)
}

// DispatchError is a gate or handler failure for one interaction.
type DispatchError struct {
	Command string
	Stage   string // "gate" or "run"
	Gate    int    // index of the failing gate when Stage is "gate"
	Err     error
}

func (e *DispatchError) Error() string {
	if e.Stage == "gate" {
		return fmt.Sprintf("command %s: gate %d: %v", e.Command, e.Gate, e.Err)
	}
	return fmt.Sprintf("command %s: %v", e.Command, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Dispatcher owns the command table and the gate chain. Both are fixed after
// construction.
type Dispatcher struct {
	commands Lookup
	gates    []Gate
	host     cmd.Host
	log      logging.Logger
}

// New returns a Dispatcher. Gates run in the order given.
func New(commands Lookup, host cmd.Host, log logging.Logger, gates ...Gate) *Dispatcher {
	return &Dispatcher{
		commands: commands,
		gates:    append([]Gate(nil), gates...),
		host:     host,
		log:      logging.OrNop(log),
	}
}

// Dispatch handles one interaction. It invokes at most one handler and never
// returns or panics: failures are logged and reported to the user.
func (d *Dispatcher) Dispatch(ctx context.Context, i cmd.Interaction) {
	if !i.IsChatInput() {
		return
	}

	c, ok := d.commands.Get(i.CommandName())
	if !ok || !c.Runnable() {
		return
	}

	if err := d.run(ctx, i, c); err != nil {
		d.log.Error("Error executing command", "command", c.Name, "interaction", i.ID(), "err", err)
		d.notify(ctx, i, c)
	}
}

func (d *Dispatcher) run(ctx context.Context, i cmd.Interaction, c *cmd.Command) (err error) {
	stage, gate := "gate", 0
	defer func() {
		if r := recover(); r != nil {
			err = &DispatchError{Command: c.Name, Stage: stage, Gate: gate, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	for idx, g := range d.gates {
		gate = idx
		verdict, gerr := g.Check(ctx, i, c, d.host)
		if gerr != nil {
			return &DispatchError{Command: c.Name, Stage: stage, Gate: idx, Err: gerr}
		}
		if verdict == cmd.Stop {
			d.log.Debug("Command blocked", "command", c.Name, "gate", idx)
			return nil
		}
	}

	stage = "run"
	inv := &cmd.Invocation{Interaction: i, Host: d.host}
	if d.host != nil {
		inv.Client = d.host.Client()
	}
	if rerr := c.Run(ctx, inv); rerr != nil {
		return &DispatchError{Command: c.Name, Stage: stage, Err: rerr}
	}
	return nil
}

// notify tells the user something went wrong: a reply if nothing was sent
// yet, a follow-up otherwise. Its own failure is logged and dropped.
func (d *Dispatcher) notify(ctx context.Context, i cmd.Interaction, c *cmd.Command) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Failed to send error message", "command", c.Name, "err", fmt.Errorf("panic: %v", r))
		}
	}()

	msg := cmd.Response{Content: ErrorMessage, Ephemeral: true}

	var err error
	if i.Replied() || i.Deferred() {
		err = i.FollowUp(ctx, msg)
	} else {
		err = i.Reply(ctx, msg)
	}
	if err != nil {
		d.log.Error("Failed to send error message", "command", c.Name, "err", err)
	}
}
