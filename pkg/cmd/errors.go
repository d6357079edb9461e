package cmd

import (
	"errors"
	"fmt"
)

var ErrDuplicate = errors.New("duplicate command name")

func errMissing(field string) error {
	return fmt.Errorf("missing %s", field)
}

// LoadError reports a single definition that could not be loaded. The item is
// skipped; loading of the remaining items goes on.
type LoadError struct {
	Source string // file path or registration site
	Name   string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Source != "" && e.Name != "":
		return fmt.Sprintf("load %s (%s): %v", e.Name, e.Source, e.Err)
	case e.Source != "":
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Name, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }
