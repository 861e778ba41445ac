package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "../../data/thevault"

func writeSettings(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Valid(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--data", dataDir, "../../examples/goblin.yaml", "../../examples/snotgrub.yaml"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "All files are valid!")
}

func TestRun_DataOnly(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--data", dataDir}, &out))
}

func TestRun_ReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeSettings(t, dir, "range.yaml", `
name: Goblin
game: Manual_TheVault_Chakraa
Manual_TheVault_Chakraa:
  amount_of_keys: 0
  amount_of_treasure_in_vault: random
  goal: 1
`),
		writeSettings(t, dir, "dup.yaml", "name: Goblin\ngame: Manual_TheVault_Chakraa\n"),
		writeSettings(t, dir, "other.yaml", "name: Link\ngame: Zelda\n"),
		writeSettings(t, dir, "settings.json", "{}"),
	}

	var out bytes.Buffer
	err := run(append([]string{"--data", dataDir}, files...), &out)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "range.yaml: option value out of range: amount_of_keys=0")
	assert.Contains(t, msg, "range.yaml: unknown option: goal")
	assert.NotContains(t, msg, "amount_of_treasure_in_vault")
	assert.Contains(t, msg, `dup.yaml: player name "Goblin" is already used by range.yaml`)
	assert.Contains(t, msg, `other.yaml: game "Zelda"`)
	assert.Contains(t, msg, "settings.json: settings file must have .yaml extension")
}

func TestRun_BadData(t *testing.T) {
	err := run([]string{"--data", t.TempDir()}, &bytes.Buffer{})
	assert.Error(t, err)
}
