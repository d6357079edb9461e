// Package discord adapts the command core to Discord through discordgo: the
// remote command registry, interaction replies, and the gateway event bridge.
package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/internal/dispatch"
	"github.com/keshon/commandsync/internal/events"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/internal/reconcile"
	"github.com/keshon/commandsync/pkg/cmd"
)

// ErrGatesWithoutCommands is returned by New when gates are configured but
// there are no commands for them to guard.
var ErrGatesWithoutCommands = errors.New("gates require a command registry")

// Ledger records the outcome of every sync pass.
type Ledger interface {
	RecordSync(report *reconcile.Report) error
}

// Options configures a Bot. Only Session is required.
type Options struct {
	Session *discordgo.Session

	// Commands are reconciled against the registry at startup and dispatched
	// on interaction. Nil disables both.
	Commands *cmd.Registry

	// Gates run in order before every command.
	Gates []dispatch.Gate

	// Events is the table of gateway event chains. Nil disables routing.
	Events *events.Table

	// TestGuildID scopes registration to one guild instead of global.
	TestGuildID string

	// SkipSync leaves the remote registry untouched at startup.
	SkipSync bool

	// ReadyTimeout bounds the wait for the gateway READY event.
	ReadyTimeout time.Duration

	Ledger Ledger
	Logger logging.Logger
}

// Bot is the composition root: a live session plus the command table, the
// dispatcher, and the event router built around it.
type Bot struct {
	dg     *discordgo.Session
	opts   Options
	log    logging.Logger
	router *events.Router
	disp   *dispatch.Dispatcher
	ready  chan struct{}
	report *reconcile.Report

	addHandler   func(handler any) func()
	openRegistry func(ctx context.Context) (reconcile.Registry, string, error)
}

var _ cmd.Host = (*Bot)(nil)

// New validates opts and wires the dispatcher and router. Nothing touches the
// network until Run.
func New(opts Options) (*Bot, error) {
	if opts.Session == nil {
		return nil, errors.New("discord session is required")
	}
	if len(opts.Gates) > 0 && opts.Commands == nil {
		return nil, ErrGatesWithoutCommands
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 30 * time.Second
	}

	b := &Bot{
		dg:    opts.Session,
		opts:  opts,
		log:   logging.OrNop(opts.Logger),
		ready: make(chan struct{}),
	}
	b.addHandler = b.dg.AddHandler
	b.openRegistry = b.commandRegistry

	if opts.Commands != nil {
		b.disp = dispatch.New(opts.Commands, b, b.log, opts.Gates...)
	}
	if opts.Events != nil {
		b.router = events.NewRouter(b, KnownEvent, b.log)
		for _, name := range opts.Events.Names() {
			b.router.Subscribe(EventName(name), opts.Events.Chain(name)...)
		}
	}
	return b, nil
}

// Client returns the live session.
func (b *Bot) Client() any { return b.dg }

// Commands returns the registered commands in registration order.
func (b *Bot) Commands() []*cmd.Command {
	if b.opts.Commands == nil {
		return nil
	}
	return b.opts.Commands.All()
}

// LastReport returns the report of the startup sync, if one ran.
func (b *Bot) LastReport() *reconcile.Report { return b.report }

// Run opens the gateway, syncs commands once READY arrives, and serves
// interactions and events until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	removeReady := b.dg.AddHandlerOnce(func(*discordgo.Session, *discordgo.Ready) {
		close(b.ready)
	})
	if b.router != nil {
		b.addHandler(b.onEvent(ctx))
	}

	if err := b.dg.Open(); err != nil {
		removeReady()
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	timer := time.NewTimer(b.opts.ReadyTimeout)
	defer timer.Stop()
	select {
	case <-b.ready:
	case <-timer.C:
		return errors.New("timed out waiting for gateway READY")
	case <-ctx.Done():
		return nil
	}

	if err := b.start(ctx); err != nil {
		return err
	}

	b.log.Info("Discord bot is running", "user", b.dg.State.User.Username)

	<-ctx.Done()
	b.log.Info("Shutdown signal received. Cleaning up...")
	return nil
}

// start attaches the interaction handler and then syncs, so interactions
// arriving during the sync are already dispatched.
func (b *Bot) start(ctx context.Context) error {
	if b.opts.Commands == nil {
		return nil
	}
	b.addHandler(b.onInteractionCreate(ctx))

	if b.opts.SkipSync {
		b.log.Info("Command sync skipped")
		return nil
	}
	return b.sync(ctx)
}

func (b *Bot) commandRegistry(ctx context.Context) (reconcile.Registry, string, error) {
	appID, err := ApplicationID(ctx, b.dg)
	if err != nil {
		return nil, "", err
	}
	registry := NewCommandRegistry(b.dg, appID, b.opts.TestGuildID)
	return registry, registry.Scope(), nil
}

func (b *Bot) sync(ctx context.Context) error {
	registry, scope, err := b.openRegistry(ctx)
	if err != nil {
		return err
	}
	rec := reconcile.New(registry, scope, b.log)

	report, err := rec.Reconcile(ctx, b.opts.Commands.Definitions())
	b.report = report
	if report != nil && b.opts.Ledger != nil {
		if lerr := b.opts.Ledger.RecordSync(report); lerr != nil {
			b.log.Warn("Failed to record sync report", "run", report.RunID, "err", lerr)
		}
	}
	if err != nil {
		return fmt.Errorf("command sync failed: %w", err)
	}
	return nil
}

func (b *Bot) onInteractionCreate(ctx context.Context) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, e *discordgo.InteractionCreate) {
		b.disp.Dispatch(ctx, NewInteraction(s, e))
	}
}

func (b *Bot) onEvent(ctx context.Context) func(*discordgo.Session, *discordgo.Event) {
	return func(_ *discordgo.Session, e *discordgo.Event) {
		if e.Type == "" || !b.router.Subscribed(e.Type) {
			return
		}
		b.router.Route(ctx, e.Type, e.Struct)
	}
}
