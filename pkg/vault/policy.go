// Package vault holds the item and location policy for The Vault.
package vault

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jwebster45206/vault-world/pkg/world"
)

const (
	VaultKey       = "Vault Key"
	TreasurePrefix = "Treasure "
)

// BonusBatch is a set of bonus-key items removed from the pool when the
// configured key count is below Threshold.
type BonusBatch struct {
	Threshold int
	Items     []string
}

// BonusBatches is ordered by ascending threshold.
var BonusBatches = []BonusBatch{
	{Threshold: 10, Items: []string{
		"Mind Goblin Deez (+5 Vault Keys)",
		"It's Goblin-Engineered! (+5 Vault Keys)",
	}},
	{Threshold: 20, Items: []string{
		"Zizzlecrank with the Drill! (+10 Vault Keys)",
		"Time is Money, Friend. (+10 Vault Keys)",
	}},
	{Threshold: 30, Items: []string{
		"Found a Shiny Rock! (Totally Not a Diamond) (+15 Vault Keys)",
		"Snotgrub drops a Vial of Acid on the lock! (+15 Vault Keys)",
	}},
	{Threshold: 40, Items: []string{
		"STRIKING IT WITH A HUGE FKIN' MACE! (+20 Vault Keys)",
		"Strapping The Vault with a Jetpack and sending it sky-high! (+20 Vault Keys)",
	}},
	{Threshold: 50, Items: []string{
		"Lining up the Firing Squad and SHOOT IT TO OBLIVIION! (+25 Vault Keys)",
		"Bringing in the Explosives! (+25 Vault Keys)",
	}},
}

// ParseTreasureIndex returns N for a location named "Treasure N".
// ok is false for any other name, including a bare "Treasure".
func ParseTreasureIndex(name string) (n int, ok bool) {
	if !strings.HasPrefix(name, TreasurePrefix) {
		return 0, false
	}
	token := strings.Split(name, " ")[1]
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PruneTreasure removes every "Treasure N" location with N > limit from the
// regions owned by player, and returns what it removed.
func PruneTreasure(regions []*world.Region, player, limit int) []*world.Location {
	var removed []*world.Location
	for _, region := range regions {
		if region.Player != player {
			continue
		}
		// Iterate a copy; RemoveLocation rewrites region.Locations.
		for _, loc := range append([]*world.Location(nil), region.Locations...) {
			n, ok := ParseTreasureIndex(loc.Name)
			if !ok || n <= limit {
				continue
			}
			if region.RemoveLocation(loc) {
				removed = append(removed, loc)
			}
		}
	}
	return removed
}

// PruneBonusItems removes the bonus batches whose threshold is above keys.
// Running it again with the same keys changes nothing.
func PruneBonusItems(pool []world.Item, keys int) []world.Item {
	for _, batch := range BonusBatches {
		if keys >= batch.Threshold {
			continue
		}
		for _, name := range batch.Items {
			pool = world.RemoveItemsNamed(pool, name)
		}
	}
	return pool
}

// CapVaultKeys leaves at most keys Vault Keys in the pool. Surplus keys are
// taken from the end of the pool and returned separately.
func CapVaultKeys(pool []world.Item, keys int) (kept, surplus []world.Item) {
	excess := world.CountItems(pool, VaultKey) - keys
	if excess <= 0 {
		return pool, nil
	}

	kept = make([]world.Item, 0, len(pool)-excess)
	for i := len(pool) - 1; i >= 0; i-- {
		if excess > 0 && pool[i].Name == VaultKey {
			surplus = append(surplus, pool[i])
			excess--
			continue
		}
		kept = append(kept, pool[i])
	}
	slices.Reverse(kept)
	return kept, surplus
}
