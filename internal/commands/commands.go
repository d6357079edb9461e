// Package commands holds the Go handlers that command definition files bind
// to by name.
package commands

import (
	"context"
	"strings"

	"github.com/keshon/commandsync/internal/manifest"
	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/internal/storage"
	"github.com/keshon/commandsync/pkg/cmd"
)

const (
	discordMaxMessageLength = 2000
	codeLeftBlockWrapper    = "```md"
	codeRightBlockWrapper   = "```"
)

var maxContentLength = discordMaxMessageLength - len(codeLeftBlockWrapper) - len(codeRightBlockWrapper) - 2

// Store is the persistence the handlers read and write.
type Store interface {
	CommandHistory(guildID string) ([]storage.CommandHistoryRecord, error)
	DisableGroup(guildID, group string) error
	EnableGroup(guildID, group string) error
	DisabledGroups(guildID string) ([]string, error)
	LastSync(scope string) (*reconcile.Report, error)
}

// Deps are the handlers' shared dependencies.
type Deps struct {
	Store Store
	Scope string // registry scope whose sync history sync-status shows
}

// Handlers returns the handler table definition files bind to.
func Handlers(d Deps) manifest.Handlers {
	return manifest.Handlers{
		"ping":        ping,
		"help":        help,
		"cmd-log":     d.commandLog,
		"cmd-toggle":  d.toggleGroup,
		"cmd-status":  d.groupStatus,
		"sync-status": d.syncStatus,
	}
}

func reply(ctx context.Context, inv *cmd.Invocation, content string) error {
	return inv.Interaction.Reply(ctx, cmd.Response{Content: content, Ephemeral: true})
}

func codeBlock(body string) string {
	return codeLeftBlockWrapper + "\n" + strings.TrimRight(body, "\n") + "\n" + codeRightBlockWrapper
}

func groupOf(c *cmd.Command) string {
	if g, ok := c.Metadata["group"].(string); ok && g != "" {
		return g
	}
	return "general"
}
