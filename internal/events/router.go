// Package events routes platform events through ordered handler chains.
package events

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/pkg/cmd"
)

// EventHandlerError is a failure of one chained handler during one firing.
type EventHandlerError struct {
	Event string
	Ref   string
	Err   error
}

func (e *EventHandlerError) Error() string {
	return fmt.Sprintf("event %s: handler %s: %v", e.Event, e.Ref, e.Err)
}

func (e *EventHandlerError) Unwrap() error { return e.Err }

// Router holds the subscribed chains. Subscriptions happen at startup;
// Route may then be called concurrently.
type Router struct {
	known  func(string) bool
	chains map[string][]Entry
	host   cmd.Host
	log    logging.Logger
}

// NewRouter returns a Router. known reports whether the platform emits an
// event name; nil accepts every name.
func NewRouter(host cmd.Host, known func(string) bool, log logging.Logger) *Router {
	return &Router{
		known:  known,
		chains: make(map[string][]Entry),
		host:   host,
		log:    logging.OrNop(log),
	}
}

// Subscribe adds entries to the chain of name. Unknown names are skipped.
func (r *Router) Subscribe(name string, entries ...Entry) bool {
	if r.known != nil && !r.known(name) {
		r.log.Warn("Skipping unknown event", "event", name)
		return false
	}
	r.chains[name] = sortedCopy(append(r.chains[name], entries...))
	r.log.Debug("Subscribed event chain", "event", name, "handlers", len(r.chains[name]))
	return true
}

// SubscribeTable subscribes every chain of t and returns how many were accepted.
func (r *Router) SubscribeTable(t *Table) int {
	n := 0
	for _, name := range t.Names() {
		if r.Subscribe(name, t.Chain(name)...) {
			n++
		}
	}
	return n
}

// Subscribed reports whether name has a chain.
func (r *Router) Subscribed(name string) bool {
	_, ok := r.chains[name]
	return ok
}

// Route runs the chain of name sequentially. A handler returning cmd.Stop
// ends this firing; a failing handler is logged and the chain goes on.
func (r *Router) Route(ctx context.Context, name string, args ...any) {
	chain, ok := r.chains[name]
	if !ok {
		return
	}

	var client any
	if r.host != nil {
		client = r.host.Client()
	}

	for _, entry := range chain {
		verdict, err := r.call(ctx, name, entry, args, client)
		if err != nil {
			r.log.Error("Error running event handler", "event", name, "handler", entry.Ref, "err", err)
			continue
		}
		if verdict == cmd.Stop {
			return
		}
	}
}

func (r *Router) call(ctx context.Context, name string, entry Entry, args []any, client any) (verdict cmd.Verdict, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			verdict, err = cmd.Continue, &EventHandlerError{Event: name, Ref: entry.Ref, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	verdict, err = entry.Handler.Handle(ctx, args, client, r.host)
	if err != nil {
		return cmd.Continue, &EventHandlerError{Event: name, Ref: entry.Ref, Err: err}
	}
	return verdict, nil
}
