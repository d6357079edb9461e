package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/internal/testutil"
	"github.com/keshon/commandsync/pkg/cmd"
)

func TestPlan_Scenarios(t *testing.T) {
	t.Parallel()

	ping := &cmd.Definition{Name: "ping", Description: "pong", Options: []cmd.Option{}}
	pingV2 := &cmd.Definition{Name: "ping", Description: "pong v2"}
	old := &cmd.Definition{Name: "old", Description: "retired", Deleted: true}
	gone := &cmd.Definition{Name: "gone", Description: "never existed", Deleted: true}

	tests := []struct {
		name   string
		local  []*cmd.Definition
		remote map[string]*Remote
		want   []Operation
	}{
		{
			name:   "create on empty registry",
			local:  []*cmd.Definition{ping},
			remote: map[string]*Remote{},
			want:   []Operation{{Kind: OpCreate, Name: "ping", Definition: ping}},
		},
		{
			name:   "update on changed description",
			local:  []*cmd.Definition{pingV2},
			remote: map[string]*Remote{"ping": {ID: "1", Definition: cmd.Definition{Name: "ping", Description: "pong"}}},
			want:   []Operation{{Kind: OpUpdate, Name: "ping", ID: "1", Definition: pingV2}},
		},
		{
			name:   "delete flagged command",
			local:  []*cmd.Definition{old},
			remote: map[string]*Remote{"old": {ID: "123", Definition: cmd.Definition{Name: "old", Description: "retired"}}},
			want:   []Operation{{Kind: OpDelete, Name: "old", ID: "123"}},
		},
		{
			name:   "skip deleted command without remote",
			local:  []*cmd.Definition{gone},
			remote: map[string]*Remote{},
			want:   []Operation{{Kind: OpNoOp, Name: "gone", Skipped: true}},
		},
		{
			name:  "remote only commands are untouched and order follows manifest",
			local: []*cmd.Definition{old, ping},
			remote: map[string]*Remote{
				"old":   {ID: "123", Definition: cmd.Definition{Name: "old", Description: "retired"}},
				"ping":  {ID: "7", Definition: cmd.Definition{Name: "ping", Description: "pong"}},
				"stray": {ID: "9", Definition: cmd.Definition{Name: "stray", Description: "left alone"}},
			},
			want: []Operation{
				{Kind: OpDelete, Name: "old", ID: "123"},
				{Kind: OpNoOp, Name: "ping", ID: "7"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Plan(tt.local, tt.remote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcile_AppliesInManifestOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := newFakeRegistry(
		&Remote{ID: "1", Definition: cmd.Definition{Name: "ping", Description: "pong"}},
		&Remote{ID: "2", Definition: cmd.Definition{Name: "old", Description: "retired"}},
	)
	local := []*cmd.Definition{
		{Name: "help", Description: "show help"},
		{Name: "ping", Description: "pong v2"},
		{Name: "old", Description: "retired", Deleted: true},
		{Name: "gone", Description: "gone", Deleted: true},
	}
	log := &testutil.Logger{}

	// --- Act ---
	report, err := New(reg, "global", log).Reconcile(context.Background(), local)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "create:help", "update:ping", "delete:2"}, reg.calls)
	assert.Equal(t, 3, report.Mutations())
	assert.Equal(t, "global", report.Scope)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, Fingerprint(local), report.Fingerprint)
	assert.Contains(t, log.Messages("info"), "Skipping registering command as it's set to delete")
	require.Len(t, report.Actions, 4)
	assert.Equal(t, Action{Op: "create", Name: "help", ID: "1001"}, report.Actions[0])
	assert.True(t, report.Actions[3].Skipped)
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	reg := newFakeRegistry()
	local := []*cmd.Definition{
		{Name: "ping", Description: "pong"},
		{Name: "roll", Description: "roll dice", Options: []cmd.Option{
			{Name: "sides", Type: cmd.OptionInteger, Description: "sides", Required: cmd.Bool(true)},
		}},
		{Name: "gone", Description: "gone", Deleted: true},
	}
	r := New(reg, "global", nil)

	_, err := r.Reconcile(context.Background(), local)
	require.NoError(t, err)
	first := len(reg.mutations())

	report, err := r.Reconcile(context.Background(), local)
	require.NoError(t, err)

	assert.Equal(t, 2, first)
	assert.Len(t, reg.mutations(), first, "second pass must not call the registry")
	assert.Zero(t, report.Mutations())
}

func TestReconcile_DeletedWithoutRemoteMakesNoRegistryCalls(t *testing.T) {
	t.Parallel()

	reg := newFakeRegistry()
	_, err := New(reg, "global", nil).Reconcile(context.Background(), []*cmd.Definition{
		{Name: "gone", Description: "gone", Deleted: true},
	})

	require.NoError(t, err)
	assert.Empty(t, reg.mutations())
}

func TestReconcile_AbortsOnFirstFailureWithoutRollback(t *testing.T) {
	t.Parallel()

	reg := newFakeRegistry()
	reg.failOn = "create:b"
	log := &testutil.Logger{}

	report, err := New(reg, "guild-1", log).Reconcile(context.Background(), []*cmd.Definition{
		{Name: "a", Description: "a"},
		{Name: "b", Description: "b"},
		{Name: "c", Description: "c"},
	})

	var regErr *RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "create", regErr.Op)
	assert.Equal(t, "b", regErr.Name)

	assert.Equal(t, []string{"create:a", "create:b"}, reg.mutations())
	assert.Contains(t, reg.records, "a", "applied operations are kept")
	assert.Len(t, report.Actions, 1)
	assert.NotEmpty(t, report.Error)
	assert.Equal(t, []string{"Error registering commands"}, log.Messages("error"))
}

func TestReconcile_FetchFailure(t *testing.T) {
	t.Parallel()

	reg := newFakeRegistry()
	reg.fetchErr = errors.New("unauthorized")

	_, err := New(reg, "global", nil).Reconcile(context.Background(), []*cmd.Definition{{Name: "a", Description: "a"}})

	var regErr *RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "fetch", regErr.Op)
	assert.Empty(t, reg.mutations())
}

func TestPreview_DoesNotMutate(t *testing.T) {
	t.Parallel()

	reg := newFakeRegistry()
	ops, err := New(reg, "global", nil).Preview(context.Background(), []*cmd.Definition{{Name: "a", Description: "a"}})

	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpCreate, ops[0].Kind)
	assert.Equal(t, "create a", ops[0].String())
	assert.Empty(t, reg.mutations())
}
