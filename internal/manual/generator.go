package manual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/vault-world/pkg/hooks"
	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/world"
)

var (
	ErrNoPlayers    = errors.New("no players registered")
	ErrWrongGame    = errors.New("settings are for a different game")
	ErrPoolOverflow = errors.New("item pool is larger than the number of locations")
	ErrNotGenerated = errors.New("generation has not run")
	ErrAlreadyRan   = errors.New("generation already ran")
)

type Option func(*Generator)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// Generator is a single-session host. It owns the regions, item pools and
// starting inventories of every player and calls the hooks in the host's
// fixed order. It does not place items.
type Generator struct {
	data   *Data
	hooks  hooks.Hooks
	logger *slog.Logger
	seed   uint64
	rng    *rand.Rand
	defs   *options.Definitions

	players      []*playerWorld
	regions      []*world.Region
	precollected map[int][]world.Item
	hints        world.HintData

	// player -> location name, rebuilt lazily after ClearLocationCache
	locationIndex map[int]map[string]*world.Location

	result *Result
}

var (
	_ world.Multiworld           = (*Generator)(nil)
	_ world.LocationCacheClearer = (*Generator)(nil)
)

// NewGenerator creates a generator for data and registers the options
// defined by h.
func NewGenerator(data *Data, h hooks.Hooks, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{
		data:         data,
		hooks:        h,
		logger:       logger,
		seed:         rand.Uint64(),
		precollected: make(map[int][]world.Item),
		hints:        make(world.HintData),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed>>1|1))

	g.defs = h.BeforeOptionsDefined(options.NewDefinitions())
	g.defs = h.AfterOptionsDefined(g.defs)
	return g
}

// Definitions returns the option registry built by the hooks.
func (g *Generator) Definitions() *options.Definitions {
	return g.defs
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

// AddPlayer registers a player with raw option values and returns its slot.
func (g *Generator) AddPlayer(name string, raw map[string]any) (int, error) {
	if g.result != nil {
		return 0, ErrAlreadyRan
	}
	values, err := options.ResolveAll(g.defs, raw, g.rng)
	if err != nil {
		return 0, fmt.Errorf("player %s: %w", name, err)
	}

	p := &playerWorld{
		gen:     g,
		player:  len(g.players) + 1,
		name:    name,
		options: values,
	}
	g.players = append(g.players, p)
	g.logger.Info("Registered player", "player", p.player, "player_name", name, "options", values)
	return p.player, nil
}

// AddPlayerSettings registers a player from a settings file.
func (g *Generator) AddPlayerSettings(ps *options.PlayerSettings) (int, error) {
	if ps.Game != g.data.Game.FullName() {
		return 0, fmt.Errorf("%w: %s wants %q, this is %q", ErrWrongGame, ps.Name, ps.Game, g.data.Game.FullName())
	}
	raw, err := ps.Options()
	if err != nil {
		return 0, fmt.Errorf("player %s: %w", ps.Name, err)
	}
	return g.AddPlayer(ps.Name, raw)
}

// Generate runs every lifecycle stage for every player. Stages run in host
// order; within a stage players run in slot order.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if g.result != nil {
		return nil, ErrAlreadyRan
	}
	if len(g.players) == 0 {
		return nil, ErrNoPlayers
	}

	stages := []struct {
		name string
		run  func(p *playerWorld) error
	}{
		{"create_regions", g.createRegions},
		{"create_items", g.createItems},
		{"set_rules", g.setRules},
		{"generate_basic", g.generateBasic},
		{"fill_slot_data", g.fillSlotData},
		{"extend_hint_information", g.extendHints},
	}

	started := time.Now()
	for _, stage := range stages {
		for _, p := range g.players {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation cancelled during %s: %w", stage.name, err)
			}
			if err := stage.run(p); err != nil {
				return nil, fmt.Errorf("%s for player %d (%s): %w", stage.name, p.player, p.name, err)
			}
		}
		g.logger.Debug("Stage complete", "stage", stage.name)
	}

	g.result = g.buildResult()
	g.logger.Info("Generation complete",
		"id", g.result.ID,
		"seed", g.seed,
		"players", len(g.players),
		"duration", time.Since(started))
	return g.result, nil
}

// Regions implements world.Multiworld.
func (g *Generator) Regions() []*world.Region {
	return g.regions
}

// PushPrecollected implements world.Multiworld.
func (g *Generator) PushPrecollected(item world.Item) {
	g.precollected[item.Player] = append(g.precollected[item.Player], item)
}

// Precollected returns the starting inventory of player.
func (g *Generator) Precollected(player int) []world.Item {
	return g.precollected[player]
}

// ClearLocationCache implements world.LocationCacheClearer.
func (g *Generator) ClearLocationCache() {
	g.locationIndex = nil
}

// Location looks up a location by player and name.
func (g *Generator) Location(player int, name string) (*world.Location, bool) {
	if g.locationIndex == nil {
		g.indexLocations()
	}
	loc, ok := g.locationIndex[player][name]
	return loc, ok
}

func (g *Generator) indexLocations() {
	g.locationIndex = make(map[int]map[string]*world.Location)
	for _, r := range g.regions {
		byName, ok := g.locationIndex[r.Player]
		if !ok {
			byName = make(map[string]*world.Location)
			g.locationIndex[r.Player] = byName
		}
		for _, loc := range r.Locations {
			byName[loc.Name] = loc
		}
	}
}

func (g *Generator) createRegions(p *playerWorld) error {
	g.hooks.BeforeCreateRegions(p)

	byName := make(map[string]*world.Region)
	for _, name := range g.data.RegionNames() {
		r := &world.Region{Name: name, Player: p.player}
		byName[name] = r
		g.regions = append(g.regions, r)
	}
	for i, def := range g.data.Locations {
		regionName := def.Region
		if regionName == "" {
			regionName = MenuRegion
		}
		r, ok := byName[regionName]
		if !ok {
			return fmt.Errorf("%w: location %q is in unknown region %q", ErrInvalidData, def.Name, regionName)
		}
		loc := &world.Location{
			Name:    def.Name,
			Player:  p.player,
			Region:  regionName,
			Victory: def.Victory,
		}
		if !def.Victory {
			loc.Address = int64(i + 1)
		}
		r.Locations = append(r.Locations, loc)
	}
	g.indexLocations()

	g.hooks.AfterCreateRegions(p)
	return nil
}

func (g *Generator) createItems(p *playerWorld) error {
	var pool []world.Item
	for _, def := range g.data.Items {
		for i := 0; i < def.Copies(); i++ {
			pool = append(pool, p.createItem(def.Name))
		}
	}

	pool = g.hooks.BeforeCreateItemsStarting(pool, p)
	pool = g.applyStartingItems(p, pool)
	pool = g.hooks.BeforeCreateItemsFiller(pool, p)
	pool = p.AddFillerItems(pool, nil)
	pool = g.hooks.AfterCreateItems(pool, p)

	if capacity := p.capacity(); len(pool) > capacity {
		return fmt.Errorf("%w: %d items for %d locations", ErrPoolOverflow, len(pool), capacity)
	}
	p.pool = pool

	g.logger.Debug("Item pool created",
		"player", p.player,
		"pool", len(pool),
		"precollected", len(g.precollected[p.player]))
	return nil
}

// applyStartingItems moves the game's starting items out of the pool.
func (g *Generator) applyStartingItems(p *playerWorld, pool []world.Item) []world.Item {
	for _, s := range g.data.Game.StartingItems {
		var candidates []int
		for i, item := range pool {
			if g.matchesStarting(s, item.Name) {
				candidates = append(candidates, i)
			}
		}
		if s.Random > 0 && s.Random < len(candidates) {
			g.rng.Shuffle(len(candidates), func(i, j int) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			})
			candidates = candidates[:s.Random]
		}
		if len(candidates) == 0 {
			continue
		}

		take := make(map[int]bool, len(candidates))
		for _, i := range candidates {
			take[i] = true
		}
		kept := make([]world.Item, 0, len(pool)-len(take))
		for i, item := range pool {
			if take[i] {
				g.PushPrecollected(item)
				continue
			}
			kept = append(kept, item)
		}
		pool = kept
	}
	return pool
}

func (g *Generator) matchesStarting(s StartingItems, name string) bool {
	if slices.Contains(s.Items, name) {
		return true
	}
	def, ok := g.data.item(name)
	if !ok {
		return false
	}
	for _, c := range def.Category {
		if slices.Contains(s.ItemCategories, c) {
			return true
		}
	}
	return false
}

func (g *Generator) setRules(p *playerWorld) error {
	g.hooks.BeforeSetRules(p)
	g.hooks.AfterSetRules(p)
	return nil
}

func (g *Generator) generateBasic(p *playerWorld) error {
	g.hooks.BeforeGenerateBasic(p)
	g.hooks.AfterGenerateBasic(p)
	return nil
}

func (g *Generator) fillSlotData(p *playerWorld) error {
	data := g.hooks.BeforeFillSlotData(world.SlotData{}, p)
	if data == nil {
		data = world.SlotData{}
	}
	for _, k := range g.defs.Keys() {
		data[k] = p.options[k]
	}
	data["player_name"] = p.name
	data["game"] = g.data.Game.FullName()
	p.slotData = g.hooks.AfterFillSlotData(data, p)
	return nil
}

func (g *Generator) extendHints(p *playerWorld) error {
	g.hooks.BeforeExtendHintInformation(g.hints, p)
	g.hooks.AfterExtendHintInformation(g.hints, p)
	return nil
}

func (g *Generator) buildResult() *Result {
	r := &Result{
		ID:        uuid.New(),
		Seed:      g.seed,
		Game:      g.data.Game.FullName(),
		CreatedAt: time.Now().UTC(),
	}
	for _, p := range g.players {
		var regions []*world.Region
		for _, reg := range g.regions {
			if reg.Player == p.player {
				regions = append(regions, reg)
			}
		}
		r.Players = append(r.Players, PlayerResult{
			Player:       p.player,
			Name:         p.name,
			Options:      p.options,
			Regions:      regions,
			Pool:         p.pool,
			Precollected: g.precollected[p.player],
			SlotData:     p.slotData,
			Hints:        g.hints[p.player],
		})
	}
	return r
}

// playerWorld is one player's world.World.
type playerWorld struct {
	gen      *Generator
	player   int
	name     string
	options  map[string]int
	pool     []world.Item
	slotData world.SlotData
}

var _ world.World = (*playerWorld)(nil)

func (p *playerWorld) Player() int { return p.player }

func (p *playerWorld) Multiworld() world.Multiworld { return p.gen }

func (p *playerWorld) OptionValue(key string) int {
	if v, ok := p.options[key]; ok {
		return v
	}
	if r, ok := p.gen.defs.Get(key); ok {
		return r.Default
	}
	return 0
}

// AddFillerItems pads pool up to the number of item locations the player
// owns. It never shrinks the pool.
func (p *playerWorld) AddFillerItems(pool []world.Item, traps []world.Item) []world.Item {
	need := p.capacity() - len(pool)
	if need <= 0 {
		return pool
	}

	filler, ok := p.gen.hooks.FillerItemName(p)
	if !ok {
		filler = p.gen.data.Game.FillerItemName
	}

	for i := 0; i < need; i++ {
		if i < len(traps) {
			pool = append(pool, traps[i])
			continue
		}
		pool = append(pool, p.createItem(filler))
	}
	return pool
}

func (p *playerWorld) createItem(name string) world.Item {
	name = p.gen.hooks.BeforeCreateItem(name, p)
	item := world.Item{Name: name, Player: p.player, Classification: world.Filler}
	if def, ok := p.gen.data.item(name); ok {
		item.Classification = def.Classification()
	}
	return p.gen.hooks.AfterCreateItem(item, p)
}

// capacity is the number of locations that will receive an item.
func (p *playerWorld) capacity() int {
	n := 0
	for _, loc := range world.LocationsFor(p.gen.regions, p.player) {
		if !loc.Victory {
			n++
		}
	}
	return n
}
