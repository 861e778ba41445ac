package world

// Classification describes how an item affects generation.
type Classification string

const (
	Filler      Classification = "filler"
	Progression Classification = "progression"
	Useful      Classification = "useful"
	Trap        Classification = "trap"
)

// Item is a single entry of a player's item pool. Pools are not unique:
// several items with the same name are expected.
type Item struct {
	Name           string         `json:"name"`
	Player         int            `json:"player"`
	Classification Classification `json:"classification,omitempty"`
}

// Location is a place an item can be found.
type Location struct {
	Name    string `json:"name"`
	Player  int    `json:"player"`
	Address int64  `json:"address,omitempty"` // Zero for event locations
	Region  string `json:"region"`
	Victory bool   `json:"victory,omitempty"`
}

// Region groups locations for a single player.
type Region struct {
	Name      string      `json:"name"`
	Player    int         `json:"player"`
	Locations []*Location `json:"locations"`
}

// RemoveLocation removes loc from the region. It reports whether loc was present.
func (r *Region) RemoveLocation(loc *Location) bool {
	for i, l := range r.Locations {
		if l == loc {
			r.Locations = append(r.Locations[:i], r.Locations[i+1:]...)
			return true
		}
	}
	return false
}

// Multiworld is the generation context shared by every player in a session.
type Multiworld interface {
	// Regions returns every region of every player.
	Regions() []*Region
	// PushPrecollected marks item as owned by its player at generation start.
	PushPrecollected(item Item)
}

// LocationCacheClearer is implemented by multiworlds that index locations and
// need to drop that index after regions are modified.
type LocationCacheClearer interface {
	ClearLocationCache()
}

// World is a single player's view of the generation.
type World interface {
	Player() int
	Multiworld() Multiworld
	// OptionValue returns the resolved value of a registered option.
	OptionValue(key string) int
	// AddFillerItems pads pool up to the number of locations the player owns.
	// Traps are used before generic filler.
	AddFillerItems(pool []Item, traps []Item) []Item
}

// SlotData is per-player metadata sent to the client after generation.
type SlotData map[string]any

// HintData maps player -> location address -> extra hint text.
type HintData map[int]map[int64]string
