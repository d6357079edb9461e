package reconcile

import (
	"context"
	"fmt"

	"github.com/keshon/commandsync/pkg/cmd"
)

// fakeRegistry is an in-memory registry that records every call.
type fakeRegistry struct {
	records  map[string]*Remote
	calls    []string
	nextID   int
	fetchErr error
	failOn   string // "create:name", "update:name" or "delete:id"
}

func newFakeRegistry(remote ...*Remote) *fakeRegistry {
	f := &fakeRegistry{records: map[string]*Remote{}, nextID: 1000}
	for _, r := range remote {
		f.records[r.Name] = r
	}
	return f
}

func (f *fakeRegistry) FetchAll(context.Context) (map[string]*Remote, error) {
	f.calls = append(f.calls, "fetch")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make(map[string]*Remote, len(f.records))
	for name, r := range f.records {
		cp := *r
		out[name] = &cp
	}
	return out, nil
}

func (f *fakeRegistry) Create(_ context.Context, def *cmd.Definition) (string, error) {
	call := "create:" + def.Name
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return "", fmt.Errorf("create rejected")
	}
	f.nextID++
	id := fmt.Sprint(f.nextID)
	f.records[def.Name] = &Remote{ID: id, Definition: *def}
	return id, nil
}

func (f *fakeRegistry) Edit(_ context.Context, id string, def *cmd.Definition) error {
	call := "update:" + def.Name
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return fmt.Errorf("edit rejected")
	}
	f.records[def.Name] = &Remote{ID: id, Definition: *def}
	return nil
}

func (f *fakeRegistry) Delete(_ context.Context, id string) error {
	call := "delete:" + id
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return fmt.Errorf("delete rejected")
	}
	for name, r := range f.records {
		if r.ID == id {
			delete(f.records, name)
		}
	}
	return nil
}

// mutations returns the recorded calls other than fetch.
func (f *fakeRegistry) mutations() []string {
	var out []string
	for _, c := range f.calls {
		if c != "fetch" {
			out = append(out, c)
		}
	}
	return out
}
