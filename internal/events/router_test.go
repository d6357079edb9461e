package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/internal/testutil"
	"github.com/keshon/commandsync/pkg/cmd"
)

func recorder(trace *[]string, tag string, v cmd.Verdict, err error) Handler {
	return HandlerFunc(func(context.Context, []any, any, cmd.Host) (cmd.Verdict, error) {
		*trace = append(*trace, tag)
		return v, err
	})
}

func TestRouter_RunsChainInRefOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	table := NewTable()
	table.Add("MESSAGE_CREATE", "20-second", recorder(&trace, "second", cmd.Continue, nil))
	table.Add("MESSAGE_CREATE", "10-first", recorder(&trace, "first", cmd.Continue, nil))
	table.Add("MESSAGE_CREATE", "30-third", recorder(&trace, "third", cmd.Continue, nil))

	r := NewRouter(nil, nil, nil)
	require.Equal(t, 1, r.SubscribeTable(table))

	r.Route(context.Background(), "MESSAGE_CREATE")

	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

func TestRouter_StopHaltsOnlyThisFiring(t *testing.T) {
	t.Parallel()

	var trace []string
	stopOnce := true
	gate := HandlerFunc(func(context.Context, []any, any, cmd.Host) (cmd.Verdict, error) {
		trace = append(trace, "gate")
		if stopOnce {
			stopOnce = false
			return cmd.Stop, nil
		}
		return cmd.Continue, nil
	})

	r := NewRouter(nil, nil, nil)
	r.Subscribe("READY",
		Entry{Ref: "a", Handler: gate},
		Entry{Ref: "b", Handler: recorder(&trace, "after", cmd.Continue, nil)},
	)

	r.Route(context.Background(), "READY")
	r.Route(context.Background(), "READY")

	assert.Equal(t, []string{"gate", "gate", "after"}, trace)
}

func TestRouter_ErrorsAreIsolatedPerHandler(t *testing.T) {
	t.Parallel()

	var trace []string
	log := &testutil.Logger{}
	panicking := HandlerFunc(func(context.Context, []any, any, cmd.Host) (cmd.Verdict, error) {
		trace = append(trace, "panic")
		panic("bad cast")
	})

	r := NewRouter(nil, nil, log)
	r.Subscribe("GUILD_CREATE",
		Entry{Ref: "1", Handler: recorder(&trace, "fail", cmd.Stop, errors.New("db down"))},
		Entry{Ref: "2", Handler: panicking},
		Entry{Ref: "3", Handler: recorder(&trace, "ok", cmd.Continue, nil)},
	)

	assert.NotPanics(t, func() { r.Route(context.Background(), "GUILD_CREATE") })

	assert.Equal(t, []string{"fail", "panic", "ok"}, trace, "an error never stops the chain")
	assert.Len(t, log.Messages("error"), 2)
	assert.Equal(t, "1", log.Value("Error running event handler", "handler"))
}

func TestRouter_PassesArgsClientAndHost(t *testing.T) {
	t.Parallel()

	host := &testutil.Host{ClientValue: "session"}
	var gotArgs []any
	var gotClient any
	var gotHost cmd.Host

	r := NewRouter(host, nil, nil)
	r.Subscribe("MESSAGE_CREATE", Entry{Ref: "x", Handler: HandlerFunc(
		func(_ context.Context, args []any, client any, h cmd.Host) (cmd.Verdict, error) {
			gotArgs, gotClient, gotHost = args, client, h
			return cmd.Continue, nil
		})})

	r.Route(context.Background(), "MESSAGE_CREATE", "message", 42)

	assert.Equal(t, []any{"message", 42}, gotArgs)
	assert.Equal(t, "session", gotClient)
	assert.Same(t, host, gotHost)
}

func TestRouter_SkipsUnknownEvents(t *testing.T) {
	t.Parallel()

	log := &testutil.Logger{}
	known := func(name string) bool { return name == "READY" }
	var trace []string

	r := NewRouter(nil, known, log)
	assert.False(t, r.Subscribe("NOT_AN_EVENT", Entry{Ref: "a", Handler: recorder(&trace, "x", cmd.Continue, nil)}))
	assert.True(t, r.Subscribe("READY"))

	r.Route(context.Background(), "NOT_AN_EVENT")

	assert.Empty(t, trace)
	assert.False(t, r.Subscribed("NOT_AN_EVENT"))
	assert.True(t, r.Subscribed("READY"))
	assert.Equal(t, []string{"Skipping unknown event"}, log.Messages("warn"))
}

func TestTable_Names(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Add("b", "1", nil)
	table.Add("a", "1", nil)

	assert.Equal(t, []string{"a", "b"}, table.Names())
}
