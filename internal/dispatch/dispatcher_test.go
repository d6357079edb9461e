package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/internal/testutil"
	"github.com/keshon/commandsync/pkg/cmd"
)

type harness struct {
	registry *cmd.Registry
	host     *testutil.Host
	log      *testutil.Logger
	ran      []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{registry: cmd.NewRegistry(), log: &testutil.Logger{}}
	h.host = &testutil.Host{ClientValue: "client"}
	return h
}

func (h *harness) add(t *testing.T, name string, run cmd.RunFunc) {
	t.Helper()
	if run == nil {
		run = func(context.Context, *cmd.Invocation) error {
			h.ran = append(h.ran, name)
			return nil
		}
	}
	require.NoError(t, h.registry.Register(&cmd.Command{
		Definition: cmd.Definition{Name: name, Description: name},
		Run:        run,
	}))
}

func (h *harness) dispatcher(gates ...Gate) *Dispatcher {
	return New(h.registry, h.host, h.log, gates...)
}

func recordGate(trace *[]string, tag string, v cmd.Verdict) Gate {
	return GateFunc(func(context.Context, cmd.Interaction, *cmd.Command, cmd.Host) (cmd.Verdict, error) {
		*trace = append(*trace, tag)
		return v, nil
	})
}

func TestDispatch_RunsHandlerWithInvocation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	var got *cmd.Invocation
	h.add(t, "ping", func(_ context.Context, inv *cmd.Invocation) error {
		got = inv
		return nil
	})
	i := testutil.NewInteraction("ping")

	h.dispatcher().Dispatch(context.Background(), i)

	require.NotNil(t, got)
	assert.Same(t, i, got.Interaction)
	assert.Equal(t, "client", got.Client)
	assert.Same(t, h.host, got.Host)
	assert.Zero(t, i.Sent())
}

func TestDispatch_UnknownCommandIsSilent(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)
	i := testutil.NewInteraction("unregistered")

	h.dispatcher().Dispatch(context.Background(), i)

	assert.Empty(t, h.ran)
	assert.Empty(t, h.log.Entries)
	assert.Zero(t, i.Sent())
}

func TestDispatch_IgnoresNonChatInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)
	i := testutil.NewInteraction("ping")
	i.ChatInput = false

	h.dispatcher().Dispatch(context.Background(), i)

	assert.Empty(t, h.ran)
}

func TestDispatch_IgnoresDeletedCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	require.NoError(t, h.registry.Register(&cmd.Command{
		Definition: cmd.Definition{Name: "old", Description: "old", Deleted: true},
	}))
	i := testutil.NewInteraction("old")

	h.dispatcher().Dispatch(context.Background(), i)

	assert.Zero(t, i.Sent())
	assert.Empty(t, h.log.Entries)
}

func TestDispatch_GatesRunInOrderAndStopShortCircuits(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)
	var trace []string

	h.dispatcher(
		recordGate(&trace, "A", cmd.Continue),
		recordGate(&trace, "B", cmd.Stop),
		recordGate(&trace, "C", cmd.Continue),
	).Dispatch(context.Background(), testutil.NewInteraction("ping"))

	assert.Equal(t, []string{"A", "B"}, trace)
	assert.Empty(t, h.ran, "handler must not run after a blocking gate")
	assert.Empty(t, h.log.Messages("error"))
}

func TestDispatch_GatesSeeEarlierSideEffects(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)

	deferGate := GateFunc(func(ctx context.Context, i cmd.Interaction, _ *cmd.Command, _ cmd.Host) (cmd.Verdict, error) {
		return cmd.Continue, i.Defer(ctx, true)
	})
	var sawDeferred bool
	checkGate := GateFunc(func(_ context.Context, i cmd.Interaction, _ *cmd.Command, _ cmd.Host) (cmd.Verdict, error) {
		sawDeferred = i.Deferred()
		return cmd.Continue, nil
	})

	h.dispatcher(deferGate, checkGate).Dispatch(context.Background(), testutil.NewInteraction("ping"))

	assert.True(t, sawDeferred)
	assert.Equal(t, []string{"ping"}, h.ran)
}

func TestDispatch_HandlerErrorRepliesOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "boom", func(context.Context, *cmd.Invocation) error { return errors.New("kaput") })
	i := testutil.NewInteraction("boom")

	assert.NotPanics(t, func() { h.dispatcher().Dispatch(context.Background(), i) })

	require.Len(t, i.Replies, 1)
	assert.Empty(t, i.FollowUps)
	assert.Equal(t, cmd.Response{Content: ErrorMessage, Ephemeral: true}, i.Replies[0])
	assert.Equal(t, []string{"Error executing command"}, h.log.Messages("error"))
	assert.Equal(t, "boom", h.log.Value("Error executing command", "command"))
}

func TestDispatch_HandlerErrorAfterDeferFollowsUp(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "slow", func(ctx context.Context, inv *cmd.Invocation) error {
		if err := inv.Interaction.Defer(ctx, false); err != nil {
			return err
		}
		return errors.New("timed out upstream")
	})
	i := testutil.NewInteraction("slow")

	h.dispatcher().Dispatch(context.Background(), i)

	assert.Empty(t, i.Replies)
	require.Len(t, i.FollowUps, 1)
	assert.True(t, i.FollowUps[0].Ephemeral)
}

func TestDispatch_PanicIsRecovered(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "panic", func(context.Context, *cmd.Invocation) error { panic("nil map") })
	i := testutil.NewInteraction("panic")

	assert.NotPanics(t, func() { h.dispatcher().Dispatch(context.Background(), i) })
	assert.Equal(t, 1, i.Sent())
}

func TestDispatch_GatePanicBlocksHandler(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)
	var trace []string
	panicking := GateFunc(func(context.Context, cmd.Interaction, *cmd.Command, cmd.Host) (cmd.Verdict, error) {
		panic("nil store")
	})
	i := testutil.NewInteraction("ping")

	assert.NotPanics(t, func() {
		h.dispatcher(recordGate(&trace, "first", cmd.Continue), panicking, recordGate(&trace, "after", cmd.Continue)).
			Dispatch(context.Background(), i)
	})

	assert.Empty(t, h.ran)
	assert.Equal(t, []string{"first"}, trace)
	require.Equal(t, 1, i.Sent())
	assert.Equal(t, ErrorMessage, i.Replies[0].Content)
	assert.Contains(t, h.log.Value("Error executing command", "err"), "gate 1")
	assert.Contains(t, h.log.Value("Error executing command", "err"), "nil store")
}

func TestDispatch_GateErrorBlocksHandler(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "ping", nil)
	var trace []string
	failing := GateFunc(func(context.Context, cmd.Interaction, *cmd.Command, cmd.Host) (cmd.Verdict, error) {
		return cmd.Continue, errors.New("lookup failed")
	})
	i := testutil.NewInteraction("ping")

	h.dispatcher(failing, recordGate(&trace, "after", cmd.Continue)).Dispatch(context.Background(), i)

	assert.Empty(t, h.ran)
	assert.Empty(t, trace)
	assert.Equal(t, 1, i.Sent())
	assert.Contains(t, h.log.Value("Error executing command", "err"), "gate 0")
}

func TestDispatch_FailedNotificationIsDropped(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, "boom", func(context.Context, *cmd.Invocation) error { return errors.New("kaput") })
	i := testutil.NewInteraction("boom")
	i.ReplyErr = errors.New("unknown interaction")

	assert.NotPanics(t, func() { h.dispatcher().Dispatch(context.Background(), i) })
	assert.Equal(t, []string{"Error executing command", "Failed to send error message"}, h.log.Messages("error"))
}

func TestDispatchError(t *testing.T) {
	t.Parallel()

	inner := errors.New("denied")
	err := error(&DispatchError{Command: "ban", Stage: "gate", Gate: 2, Err: inner})

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "command ban: gate 2: denied", err.Error())
}
