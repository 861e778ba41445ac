package manual

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/world"
)

func TestRenderSpoiler(t *testing.T) {
	r := &Result{
		ID:   uuid.MustParse("6f1c1c9e-8d0e-4a43-9d55-8a3a6f0b2b11"),
		Seed: 7,
		Game: "Manual_TheVault_Chakraa",
		Players: []PlayerResult{{
			Player:  1,
			Name:    "Goblin",
			Options: map[string]int{"amount_of_keys": 3, "amount_of_treasure_in_vault": 2},
			Regions: []*world.Region{{
				Name:   "The Vault",
				Player: 1,
				Locations: []*world.Location{
					{Name: "Treasure 1", Player: 1},
					{Name: "Treasure 2", Player: 1},
				},
			}},
			Pool: []world.Item{
				{Name: "Vault Key"}, {Name: "Vault Key"}, {Name: "Goblin Gold"},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSpoiler(&buf, r, 0))
	out := buf.String()

	for _, want := range []string{
		"Manual_TheVault_Chakraa Spoiler Log",
		"Seed: 7",
		"ID: 6f1c1c9e-8d0e-4a43-9d55-8a3a6f0b2b11",
		"Player 1: Goblin",
		"Amount Of Keys: 3",
		"Amount Of Treasure In Vault: 2",
		"Locations (2)",
		"Treasure 1, Treasure 2",
		"Item Pool (3)",
		"Vault Key x2, Goblin Gold",
		"Starting Inventory (0)",
		"(none)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSpoiler_Wraps(t *testing.T) {
	g := vaultGenerator(t, map[string]any{
		options.KeyAmountOfKeys:            50,
		options.KeyAmountOfTreasureInVault: 100,
	})
	res, err := g.Generate(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderSpoiler(&buf, res, 60))

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len(line), 60, line)
	}
	assert.Contains(t, buf.String(), "Treasure 100")
	assert.Contains(t, buf.String(), "Vault Key x50")
}
