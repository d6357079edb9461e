package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/commandsync/pkg/cmd"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func handlers() Handlers {
	run := func(context.Context, *cmd.Invocation) error { return nil }
	return Handlers{"ping": run, "roll": run}
}

func TestLoad_ReadsAllFormatsInPathOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := writeFiles(t, map[string]string{
		"b/roll.yaml": `
name: dice
handler: roll
description: roll some dice
options:
  - name: sides
    type: integer
    description: number of sides
    required: true
    choices:
      - {name: d6, value: 6}
      - {name: d20, value: 20}
metadata:
  group: fun
`,
		"a/ping.jsonc": `{
  // health check
  "name": "ping",
  "description": "pong",
  "dm_permission": true,
}`,
		"c/old.json":  `{"name": "old", "description": "retired", "deleted": true}`,
		"c/notes.txt": "ignored",
	})

	// --- Act ---
	commands, errs := Load(root, handlers())

	// --- Assert ---
	require.Empty(t, errs)
	require.Len(t, commands, 3)

	assert.Equal(t, "ping", commands[0].Name)
	require.NotNil(t, commands[0].DMPermission)
	assert.True(t, *commands[0].DMPermission)

	dice := commands[1]
	assert.Equal(t, "dice", dice.Name)
	assert.NotNil(t, dice.Run)
	require.Len(t, dice.Options, 1)
	assert.Equal(t, cmd.OptionInteger, dice.Options[0].Type)
	require.NotNil(t, dice.Options[0].Required)
	assert.True(t, *dice.Options[0].Required)
	assert.Len(t, dice.Options[0].Choices, 2)
	assert.Equal(t, "fun", dice.Metadata["group"])

	assert.Equal(t, "old", commands[2].Name)
	assert.True(t, commands[2].Deleted)
	assert.Nil(t, commands[2].Run)
}

func TestLoad_SkipsBadFiles(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"1-broken.json":  `{"name": `,
		"2-nodesc.yaml":  "name: ping\n",
		"3-unbound.yaml": "name: echo\ndescription: echo back\n",
		"4-good.yaml":    "name: ping\ndescription: pong\n",
		"5-badtype.yaml": "name: roll\ndescription: d\noptions:\n  - name: x\n    type: colour\n    description: x\n",
	})

	commands, errs := Load(root, handlers())

	require.Len(t, commands, 1)
	assert.Equal(t, "ping", commands[0].Name)
	require.Len(t, errs, 4)
	for _, err := range errs {
		var loadErr *cmd.LoadError
		assert.True(t, errors.As(err, &loadErr), "%v", err)
	}
	assert.Contains(t, errs[2].Error(), `no handler "echo" registered`)
}

func TestLoad_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"a/ping.yaml":  "name: ping\ndescription: pong\n",
		"b/ping.jsonc": `{"name": "ping", "description": "pong again"}`,
		"c/roll.yaml":  "name: roll\ndescription: dice\n",
	})

	commands, errs := Load(root, handlers())

	require.Len(t, commands, 2)
	assert.Equal(t, "pong", commands[0].Description)
	assert.Equal(t, "roll", commands[1].Name)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], cmd.ErrDuplicate)
	var loadErr *cmd.LoadError
	require.ErrorAs(t, errs[0], &loadErr)
	assert.Equal(t, "ping", loadErr.Name)
	assert.Equal(t, filepath.Join(root, "b", "ping.jsonc"), loadErr.Source)
}

func TestLoad_MissingDirectory(t *testing.T) {
	t.Parallel()

	commands, errs := Load(filepath.Join(t.TempDir(), "nope"), handlers())
	assert.Empty(t, commands)
	assert.Len(t, errs, 1)

	commands, errs = Load("", handlers())
	assert.Nil(t, commands)
	assert.Nil(t, errs)
}
