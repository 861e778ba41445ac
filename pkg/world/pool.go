package world

// CountItems returns how many entries of pool are named name.
func CountItems(pool []Item, name string) int {
	n := 0
	for _, item := range pool {
		if item.Name == name {
			n++
		}
	}
	return n
}

// RemoveItemsNamed returns pool without any entry named name.
// The returned slice does not share storage with pool.
func RemoveItemsNamed(pool []Item, name string) []Item {
	kept := make([]Item, 0, len(pool))
	for _, item := range pool {
		if item.Name != name {
			kept = append(kept, item)
		}
	}
	return kept
}

// LocationsFor returns all locations owned by player, in region order.
func LocationsFor(regions []*Region, player int) []*Location {
	var locs []*Location
	for _, r := range regions {
		if r.Player != player {
			continue
		}
		locs = append(locs, r.Locations...)
	}
	return locs
}
