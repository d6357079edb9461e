package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/commandsync/pkg/cmd"
)

func help(ctx context.Context, inv *cmd.Invocation) error {
	return reply(ctx, inv, buildHelpMessage(inv.Host.Commands()))
}

func buildHelpMessage(all []*cmd.Command) string {
	groups := make(map[string][]*cmd.Command)
	for _, c := range all {
		if !c.Runnable() || c.Flag("devOnly") {
			continue
		}
		g := groupOf(c)
		groups[g] = append(groups[g], c)
	}
	if len(groups) == 0 {
		return "No commands available."
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, g := range names {
		sb.WriteString(fmt.Sprintf("**%s**\n", g))
		list := groups[g]
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, c := range list {
			sb.WriteString(fmt.Sprintf("`/%s` - %s\n", c.Name, c.Description))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
