package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "../../data/thevault"

func TestRun_WritesSpoiler(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	err := run([]string{"--data", dataDir, "--seed", "7", "../../examples/goblin.yaml", "../../examples/snotgrub.yaml"}, &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Manual_TheVault_Chakraa Spoiler Log")
	assert.Contains(t, s, "Seed: 7")
	assert.Contains(t, s, "Player 1: Goblin")
	assert.Contains(t, s, "Player 2: Snotgrub")
	assert.Contains(t, s, "Vault Key x97")
}

func TestRun_SpoilerFileAndStore(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())

	spoiler := filepath.Join(t.TempDir(), "spoiler.txt")
	var out bytes.Buffer
	err := run([]string{"--data", dataDir, "--spoiler", spoiler, "--store", "../../examples/goblin.yaml"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Saved result ")
	assert.Len(t, mr.Keys(), 2, "result value and index")

	written, err := os.ReadFile(spoiler)
	require.NoError(t, err)
	assert.Contains(t, string(written), "Player 1: Goblin")
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_URL", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no players", args: []string{"--data", dataDir}, wantErr: "at least one player"},
		{name: "store without redis", args: []string{"--store", "../../examples/goblin.yaml"}, wantErr: "REDIS_URL"},
		{name: "missing settings", args: []string{"--data", dataDir, "missing.yaml"}, wantErr: "failed to open"},
		{name: "missing data", args: []string{"--data", t.TempDir(), "../../examples/goblin.yaml"}, wantErr: "game.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
