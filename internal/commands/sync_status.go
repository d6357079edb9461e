package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/pkg/cmd"
)

func (d Deps) syncStatus(ctx context.Context, inv *cmd.Invocation) error {
	report, err := d.Store.LastSync(d.Scope)
	if err != nil {
		return fmt.Errorf("read sync report: %w", err)
	}
	if report == nil {
		return reply(ctx, inv, fmt.Sprintf("No command sync recorded for scope `%s`.", d.Scope))
	}
	return reply(ctx, inv, FormatReport(report))
}

// FormatReport renders a sync report as a Markdown code block.
func FormatReport(r *reconcile.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Sync %s\n", r.RunID))
	b.WriteString(fmt.Sprintf("scope:       %s\n", r.Scope))
	b.WriteString(fmt.Sprintf("finished:    %s\n", r.FinishedAt.UTC().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("fingerprint: %s\n", r.Fingerprint))
	b.WriteString(fmt.Sprintf("changes:     %d\n", r.Mutations()))
	if r.Error != "" {
		b.WriteString(fmt.Sprintf("error:       %s\n", r.Error))
	}

	for _, a := range r.Actions {
		if a.Op == reconcile.OpNoOp.String() && !a.Skipped {
			continue
		}
		op := a.Op
		if a.Skipped {
			op = "skip"
		}
		line := fmt.Sprintf("- %-6s %s\n", op, a.Name)
		if b.Len()+len(line) > maxContentLength {
			break
		}
		b.WriteString(line)
	}
	return codeBlock(b.String())
}
