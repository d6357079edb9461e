package events

import (
	"context"
	"sort"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Handler is one link of an event chain. It receives the event's original
// arguments plus the client and the host. Returning cmd.Stop ends the chain
// for this firing.
type Handler interface {
	Handle(ctx context.Context, args []any, client any, host cmd.Host) (cmd.Verdict, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, args []any, client any, host cmd.Host) (cmd.Verdict, error)

func (f HandlerFunc) Handle(ctx context.Context, args []any, client any, host cmd.Host) (cmd.Verdict, error) {
	return f(ctx, args, client, host)
}

// Entry binds a handler to its module reference. Chains run in
// lexicographic Ref order.
type Entry struct {
	Ref     string
	Handler Handler
}

// Table collects chains by event name at startup.
type Table struct {
	chains map[string][]Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{chains: make(map[string][]Entry)}
}

// Add appends a handler to the chain of event.
func (t *Table) Add(event, ref string, h Handler) {
	t.chains[event] = append(t.chains[event], Entry{Ref: ref, Handler: h})
}

// Names returns the event names in the table, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.chains))
	for name := range t.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the entries of event sorted by Ref.
func (t *Table) Chain(event string) []Entry {
	return sortedCopy(t.chains[event])
}

func sortedCopy(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ref < out[j].Ref
	})
	return out
}
