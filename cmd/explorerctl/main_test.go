package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/michael-freling/file-explorer/internal/config"
	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/michael-freling/file-explorer/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	command := newRootCommand(slog.New(slog.NewTextHandler(io.Discard, nil)))
	command.SetOut(&stdout)
	command.SetErr(io.Discard)
	command.SetArgs(append(args, "--config", configPath))
	err := command.Execute()
	return stdout.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, string(config.EnvironmentProduction))
	configPath := filepath.Join(t.TempDir(), "default.toml")

	got, err := runCommand(t, configPath, "tree")
	require.NoError(t, err)
	assert.Equal(t, `Documents/ (1)
  Project Notes/ (4)
    Tasks.txt (6)
  Resume.pdf (3)
Photos/ (2)
  Vacation.jpg (5)
`, got)

	got, err = runCommand(t, configPath, "create", "Music", "--kind", "folder")
	require.NoError(t, err)
	musicID := got[:len(got)-1]

	_, err = runCommand(t, configPath, "move", "2", musicID)
	require.NoError(t, err)
	_, err = runCommand(t, configPath, "rename", "5", "Beach.jpg")
	require.NoError(t, err)
	_, err = runCommand(t, configPath, "move", musicID, "5")
	assert.ErrorIs(t, err, directory.ErrInvalidMove)

	got, err = runCommand(t, configPath, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "1\n3\n4\n6\n", got)

	got, err = runCommand(t, configPath, "tree")
	require.NoError(t, err)
	assert.Equal(t, "Music/ ("+musicID+")\n  Photos/ (2)\n    Beach.jpg (5)\n", got)

	exportDirectory := t.TempDir()
	_, err = runCommand(t, configPath, "export", exportDirectory)
	require.NoError(t, err)
	for _, fileName := range []string{export.ItemsFileName, export.TreeFileName, export.PathsFileName} {
		_, err := os.Stat(filepath.Join(exportDirectory, fileName))
		assert.NoError(t, err)
	}
	_, err = runCommand(t, configPath, "export", exportDirectory)
	assert.ErrorIs(t, err, export.ErrFileAlreadyExists)

	_, err = runCommand(t, configPath, "reset")
	require.NoError(t, err)
	got, err = runCommand(t, configPath, "tree")
	require.NoError(t, err)
	assert.Contains(t, got, "Documents/ (1)")
}
