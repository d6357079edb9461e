package cmd

import "sort"

// Registry stores commands in registration order, which is the manifest order
// used for reconciliation. It does not perform dispatch.
type Registry struct {
	order  []*Command
	byName map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register validates c, applies mws and appends it. Invalid or duplicate
// commands are rejected with a *LoadError and not added.
func (r *Registry) Register(c *Command, mws ...Middleware) error {
	if err := c.Validate(); err != nil {
		return &LoadError{Name: c.Name, Err: err}
	}
	if _, exists := r.byName[c.Name]; exists {
		return &LoadError{Name: c.Name, Err: ErrDuplicate}
	}
	c = Apply(c, mws...)
	r.order = append(r.order, c)
	r.byName[c.Name] = c
	return nil
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// All returns all commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Sorted returns all commands sorted by name.
func (r *Registry) Sorted() []*Command {
	list := r.All()
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Definitions returns the definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, len(r.order))
	for i, c := range r.order {
		out[i] = &c.Definition
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.order) }
