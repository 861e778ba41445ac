package manual

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/vault-world/pkg/world"
)

// Result is the outcome of one generation session.
type Result struct {
	ID        uuid.UUID      `json:"id"`
	Seed      uint64         `json:"seed"`
	Game      string         `json:"game"`
	CreatedAt time.Time      `json:"created_at"`
	Players   []PlayerResult `json:"players"`
}

type PlayerResult struct {
	Player       int              `json:"player"`
	Name         string           `json:"name"`
	Options      map[string]int   `json:"options"`
	Regions      []*world.Region  `json:"regions"`
	Pool         []world.Item     `json:"pool"`
	Precollected []world.Item     `json:"precollected,omitempty"`
	SlotData     world.SlotData   `json:"slot_data,omitempty"`
	Hints        map[int64]string `json:"hints,omitempty"`
}

// Locations returns every location the player kept, in region order.
func (pr PlayerResult) Locations() []*world.Location {
	return world.LocationsFor(pr.Regions, pr.Player)
}

// ItemCount is an item name and how often it appears.
type ItemCount struct {
	Name  string
	Count int
}

// CountByName groups items by name in order of first appearance.
func CountByName(items []world.Item) []ItemCount {
	index := make(map[string]int)
	var counts []ItemCount
	for _, it := range items {
		i, ok := index[it.Name]
		if !ok {
			index[it.Name] = len(counts)
			counts = append(counts, ItemCount{Name: it.Name, Count: 1})
			continue
		}
		counts[i].Count++
	}
	return counts
}
