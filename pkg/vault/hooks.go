package vault

import (
	"log/slog"

	"github.com/jwebster45206/vault-world/pkg/hooks"
	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/world"
)

// Hooks applies The Vault's option-driven policy. Lifecycle points it does
// not override are passed through unchanged.
type Hooks struct {
	hooks.Passthrough
	logger *slog.Logger
}

var _ hooks.Hooks = (*Hooks)(nil)

func NewHooks(logger *slog.Logger) *Hooks {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hooks{logger: logger}
}

// BeforeOptionsDefined registers the key and treasure options.
func (h *Hooks) BeforeOptionsDefined(defs *options.Definitions) *options.Definitions {
	defs.Set(options.AmountOfKeys)
	defs.Set(options.AmountOfTreasureInVault)
	return defs
}

// AfterCreateRegions removes treasure locations beyond the configured amount.
func (h *Hooks) AfterCreateRegions(w world.World) {
	limit := w.OptionValue(options.KeyAmountOfTreasureInVault)
	mw := w.Multiworld()

	removed := PruneTreasure(mw.Regions(), w.Player(), limit)
	h.logger.Debug("Pruned treasure locations",
		"player", w.Player(),
		"treasure_limit", limit,
		"removed", len(removed))

	if c, ok := mw.(world.LocationCacheClearer); ok {
		c.ClearLocationCache()
	}
}

// BeforeCreateItemsFiller drops bonus items the key count does not call for,
// moves surplus Vault Keys to the starting inventory, and refills the pool.
func (h *Hooks) BeforeCreateItemsFiller(pool []world.Item, w world.World) []world.Item {
	keys := w.OptionValue(options.KeyAmountOfKeys)

	before := len(pool)
	pool = PruneBonusItems(pool, keys)
	h.logger.Debug("Pruned bonus key items",
		"player", w.Player(),
		"keys", keys,
		"removed", before-len(pool))

	pool, surplus := CapVaultKeys(pool, keys)
	for _, key := range surplus {
		w.Multiworld().PushPrecollected(key)
	}
	if len(surplus) > 0 {
		h.logger.Debug("Moved surplus Vault Keys to starting inventory",
			"player", w.Player(),
			"keys", keys,
			"precollected", len(surplus))
	}

	return w.AddFillerItems(pool, nil)
}
