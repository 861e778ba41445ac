package manual

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/jwebster45206/vault-world/pkg/world"
)

// MenuRegion holds locations that do not name a region.
const MenuRegion = "Menu"

var ErrInvalidData = errors.New("invalid world data")

// Game is game.json.
type Game struct {
	Game           string          `json:"game"`
	Creator        string          `json:"creator"`
	FillerItemName string          `json:"filler_item_name"`
	StartingItems  []StartingItems `json:"starting_items,omitempty"`
}

// FullName is the name players use in their settings files.
func (g Game) FullName() string {
	return "Manual_" + g.Game + "_" + g.Creator
}

// StartingItems moves matching pool items into the starting inventory.
// Random limits how many of the matches are picked; zero takes them all.
type StartingItems struct {
	Items          []string `json:"items,omitempty"`
	ItemCategories []string `json:"item_categories,omitempty"`
	Random         int      `json:"random,omitempty"`
}

// ItemDef is an entry in items.json.
type ItemDef struct {
	Name        string   `json:"name"`
	Category    []string `json:"category,omitempty"`
	Count       int      `json:"count,omitempty"` // Defaults to 1
	Progression bool     `json:"progression,omitempty"`
	Useful      bool     `json:"useful,omitempty"`
	Trap        bool     `json:"trap,omitempty"`
}

func (d ItemDef) Classification() world.Classification {
	switch {
	case d.Progression:
		return world.Progression
	case d.Useful:
		return world.Useful
	case d.Trap:
		return world.Trap
	default:
		return world.Filler
	}
}

func (d ItemDef) Copies() int {
	if d.Count <= 0 {
		return 1
	}
	return d.Count
}

// LocationDef is an entry in locations.json.
type LocationDef struct {
	Name     string   `json:"name"`
	Category []string `json:"category,omitempty"`
	Region   string   `json:"region,omitempty"`
	Requires string   `json:"requires,omitempty"`
	Victory  bool     `json:"victory,omitempty"`
}

// RegionDef is a value in regions.json, keyed by region name.
type RegionDef struct {
	Requires   string   `json:"requires,omitempty"`
	ConnectsTo []string `json:"connects_to,omitempty"`
	Starting   bool     `json:"starting,omitempty"`
}

// Data is a complete Manual world definition.
type Data struct {
	Game      Game
	Items     []ItemDef
	Locations []LocationDef
	Regions   map[string]RegionDef
}

// LoadData reads game.json, items.json, locations.json and regions.json
// from fsys. Comments and trailing commas are allowed.
func LoadData(fsys fs.FS) (*Data, error) {
	var d Data
	files := []struct {
		name   string
		target any
	}{
		{"game.json", &d.Game},
		{"items.json", &d.Items},
		{"locations.json", &d.Locations},
		{"regions.json", &d.Regions},
	}

	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(jsonc.ToJSON(raw), f.target); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, f.name, err)
		}
	}

	if d.Regions == nil {
		d.Regions = map[string]RegionDef{}
	}
	return &d, nil
}

// Validate reports every structural problem in the data.
func (d *Data) Validate() error {
	var problems []string

	if d.Game.Game == "" {
		problems = append(problems, "game.json: game is required")
	}
	if d.Game.Creator == "" {
		problems = append(problems, "game.json: creator is required")
	}
	if d.Game.FillerItemName == "" {
		problems = append(problems, "game.json: filler_item_name is required")
	}

	items := make(map[string]bool, len(d.Items))
	categories := make(map[string]bool)
	for _, it := range d.Items {
		switch {
		case it.Name == "":
			problems = append(problems, "items.json: item without a name")
		case items[it.Name]:
			problems = append(problems, fmt.Sprintf("items.json: duplicate item %q", it.Name))
		case it.Count < 0:
			problems = append(problems, fmt.Sprintf("items.json: %q has negative count", it.Name))
		}
		items[it.Name] = true
		for _, c := range it.Category {
			categories[c] = true
		}
	}

	locations := make(map[string]bool, len(d.Locations))
	victories := 0
	for _, loc := range d.Locations {
		switch {
		case loc.Name == "":
			problems = append(problems, "locations.json: location without a name")
		case locations[loc.Name]:
			problems = append(problems, fmt.Sprintf("locations.json: duplicate location %q", loc.Name))
		}
		locations[loc.Name] = true
		if loc.Region != "" && loc.Region != MenuRegion {
			if _, ok := d.Regions[loc.Region]; !ok {
				problems = append(problems, fmt.Sprintf("locations.json: %q is in unknown region %q", loc.Name, loc.Region))
			}
		}
		if loc.Victory {
			victories++
		}
	}
	if victories != 1 {
		problems = append(problems, fmt.Sprintf("locations.json: expected exactly one victory location, found %d", victories))
	}

	for _, name := range d.RegionNames() {
		for _, to := range d.Regions[name].ConnectsTo {
			if _, ok := d.Regions[to]; !ok && to != MenuRegion {
				problems = append(problems, fmt.Sprintf("regions.json: %q connects to unknown region %q", name, to))
			}
		}
	}

	for i, s := range d.Game.StartingItems {
		for _, name := range s.Items {
			if !items[name] {
				problems = append(problems, fmt.Sprintf("game.json: starting_items[%d] names unknown item %q", i, name))
			}
		}
		for _, c := range s.ItemCategories {
			if !categories[c] {
				problems = append(problems, fmt.Sprintf("game.json: starting_items[%d] names unknown category %q", i, c))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidData, strings.Join(problems, "\n  - "))
	}
	return nil
}

// RegionNames returns region names with the Menu region first and the rest
// sorted, so generation order does not depend on map iteration.
func (d *Data) RegionNames() []string {
	names := make([]string, 0, len(d.Regions)+1)
	names = append(names, MenuRegion)
	rest := make([]string, 0, len(d.Regions))
	for name := range d.Regions {
		if name != MenuRegion {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (d *Data) item(name string) (ItemDef, bool) {
	for _, it := range d.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemDef{}, false
}
