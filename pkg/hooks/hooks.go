// Package hooks defines the lifecycle callbacks a host invokes while it
// generates a world. Methods are listed in the order the host calls them.
package hooks

import (
	"io"

	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/world"
)

type Hooks interface {
	// Option registration happens once, before any player is generated.
	BeforeOptionsDefined(defs *options.Definitions) *options.Definitions
	AfterOptionsDefined(defs *options.Definitions) *options.Definitions

	// FillerItemName overrides the game's filler item when ok is true.
	FillerItemName(w world.World) (name string, ok bool)

	BeforeCreateRegions(w world.World)
	AfterCreateRegions(w world.World)

	// Called once per created item; used by plando and starting inventory too.
	BeforeCreateItem(name string, w world.World) string
	AfterCreateItem(item world.Item, w world.World) world.Item

	BeforeCreateItemsStarting(pool []world.Item, w world.World) []world.Item
	BeforeCreateItemsFiller(pool []world.Item, w world.World) []world.Item
	AfterCreateItems(pool []world.Item, w world.World) []world.Item

	BeforeSetRules(w world.World)
	AfterSetRules(w world.World)

	BeforeGenerateBasic(w world.World)
	AfterGenerateBasic(w world.World)

	BeforeFillSlotData(data world.SlotData, w world.World) world.SlotData
	AfterFillSlotData(data world.SlotData, w world.World) world.SlotData

	BeforeWriteSpoiler(w world.World, out io.Writer)

	BeforeExtendHintInformation(hints world.HintData, w world.World)
	AfterExtendHintInformation(hints world.HintData, w world.World)
}

// Passthrough implements every hook as identity or no-op. Embed it and
// override only the hooks you need.
type Passthrough struct{}

var _ Hooks = Passthrough{}

func (Passthrough) BeforeOptionsDefined(defs *options.Definitions) *options.Definitions {
	return defs
}

func (Passthrough) AfterOptionsDefined(defs *options.Definitions) *options.Definitions {
	return defs
}

func (Passthrough) FillerItemName(world.World) (string, bool) { return "", false }

func (Passthrough) BeforeCreateRegions(world.World) {}
func (Passthrough) AfterCreateRegions(world.World)  {}

func (Passthrough) BeforeCreateItem(name string, _ world.World) string { return name }

func (Passthrough) AfterCreateItem(item world.Item, _ world.World) world.Item { return item }

func (Passthrough) BeforeCreateItemsStarting(pool []world.Item, _ world.World) []world.Item {
	return pool
}

func (Passthrough) BeforeCreateItemsFiller(pool []world.Item, _ world.World) []world.Item {
	return pool
}

func (Passthrough) AfterCreateItems(pool []world.Item, _ world.World) []world.Item {
	return pool
}

func (Passthrough) BeforeSetRules(world.World) {}
func (Passthrough) AfterSetRules(world.World)  {}

func (Passthrough) BeforeGenerateBasic(world.World) {}
func (Passthrough) AfterGenerateBasic(world.World)  {}

func (Passthrough) BeforeFillSlotData(data world.SlotData, _ world.World) world.SlotData {
	return data
}

func (Passthrough) AfterFillSlotData(data world.SlotData, _ world.World) world.SlotData {
	return data
}

func (Passthrough) BeforeWriteSpoiler(world.World, io.Writer) {}

func (Passthrough) BeforeExtendHintInformation(world.HintData, world.World) {}
func (Passthrough) AfterExtendHintInformation(world.HintData, world.World)  {}
