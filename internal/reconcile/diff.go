package reconcile

import "github.com/keshon/commandsync/pkg/cmd"

// IsDifferent reports whether local differs from the stored remote shape.
//
// Options are compared by position, not by name. Localizations, default
// member permissions and DM permission are not compared, so a change limited
// to those fields does not produce an update.
func IsDifferent(remote, local *cmd.Definition) bool {
	if local.Description != remote.Description {
		return true
	}
	if len(local.Options) != len(remote.Options) {
		return true
	}

	for i := range local.Options {
		lo, ro := &local.Options[i], &remote.Options[i]

		if lo.Name != ro.Name || lo.Type != ro.Type || lo.Description != ro.Description {
			return true
		}
		if lo.Required != nil && ro.Required != nil && *lo.Required != *ro.Required {
			return true
		}
		if len(lo.Choices) != len(ro.Choices) {
			return true
		}
	}

	return false
}
