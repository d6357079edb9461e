package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/internal/config"
	"github.com/keshon/commandsync/internal/discord"
	"github.com/keshon/commandsync/internal/storage"
	"github.com/keshon/commandsync/internal/testutil"
)

func openStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "store.json"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCommandOptions_NoPathDisablesCommands(t *testing.T) {
	t.Parallel()

	log := &testutil.Logger{}
	registry, gates := commandOptions(&config.Config{}, openStore(t), log)

	assert.Nil(t, registry)
	assert.Nil(t, gates)

	dg, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	_, err = discord.New(discord.Options{Session: dg, Commands: registry, Gates: gates})
	assert.NoError(t, err)
}

func TestCommandOptions_LoadsDefinitions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping.yaml"), []byte("name: ping\ndescription: Pong!\n"), 0644))

	registry, gates := commandOptions(&config.Config{CommandsPath: dir}, openStore(t), &testutil.Logger{})

	require.NotNil(t, registry)
	assert.Equal(t, 1, registry.Len())
	assert.Len(t, gates, 3)
}
