// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandsync/internal/commands"
	"github.com/keshon/commandsync/internal/config"
	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/internal/dispatch"
	"github.com/keshon/commandsync/internal/events"
	"github.com/keshon/commandsync/internal/listeners"
	"github.com/keshon/commandsync/internal/logging"
	"github.com/keshon/commandsync/internal/manifest"
	"github.com/keshon/commandsync/internal/middleware"
	"github.com/keshon/commandsync/internal/storage"
	"github.com/keshon/commandsync/pkg/cmd"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	logger.Info("Starting bot...", "scope", cfg.Scope())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath, logger)
	if err != nil {
		logger.Error("Failed to open storage", "path", cfg.StoragePath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	registry, gates := commandOptions(cfg, store, logger)

	var table *events.Table
	if cfg.EnableEvents {
		table = listeners.Table(logger)
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Error("Failed to create session", "err", err)
		os.Exit(1)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot, err := discord.New(discord.Options{
		Session:     dg,
		Commands:    registry,
		Gates:       gates,
		Events:      table,
		TestGuildID: cfg.TestGuildID,
		SkipSync:    !cfg.SyncCommands,
		Ledger:      store,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Invalid bot configuration", "err", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("Received signal, shutting down...", "signal", s.String())
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error("Discord bot error", "err", err)
		}
		cancel()
	}

	logger.Info("Discord bot exited cleanly")
}

// commandOptions returns the command table and its gates. Without a commands
// path the bot neither syncs nor dispatches, so both are nil.
func commandOptions(cfg *config.Config, store *storage.Storage, logger logging.Logger) (*cmd.Registry, []dispatch.Gate) {
	if cfg.CommandsPath == "" {
		logger.Info("No commands path configured, command handling disabled")
		return nil, nil
	}
	return loadCommands(cfg, store, logger), []dispatch.Gate{
		middleware.GuildOnly(logger),
		middleware.DevelopersOnly(cfg.DeveloperIDs, logger),
		middleware.GroupEnabled(store, logger),
	}
}

// loadCommands binds the definition files to their handlers. Files that fail
// to load are logged and left out.
func loadCommands(cfg *config.Config, store *storage.Storage, logger logging.Logger) *cmd.Registry {
	handlers := commands.Handlers(commands.Deps{Store: store, Scope: cfg.Scope()})
	loaded, errs := manifest.Load(cfg.CommandsPath, handlers)
	for _, err := range errs {
		logger.Error("Failed to load command", "err", err)
	}

	registry := cmd.NewRegistry()
	for _, c := range loaded {
		if err := registry.Register(c, middleware.WithCommandLog(store, logger)); err != nil {
			logger.Error("Failed to register command", "err", err)
		}
	}
	logger.Info("Commands loaded", "count", registry.Len(), "path", cfg.CommandsPath)
	return registry
}
