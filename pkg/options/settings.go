package options

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"gopkg.in/yaml.v3"
)

// PlayerSettings is a player's settings file. Option values live in a
// section named after the game:
//
//	name: Goblin
//	game: Manual_TheVault_Chakraa
//	Manual_TheVault_Chakraa:
//	  amount_of_keys: 25
type PlayerSettings struct {
	Name     string         `yaml:"name"`
	Game     string         `yaml:"game"`
	Sections map[string]any `yaml:",inline"`
}

// LoadPlayerSettings decodes a YAML settings file.
func LoadPlayerSettings(r io.Reader) (*PlayerSettings, error) {
	var ps PlayerSettings
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&ps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty settings file", ErrInvalidValue)
		}
		return nil, fmt.Errorf("failed to decode player settings: %w", err)
	}
	if ps.Name == "" {
		return nil, fmt.Errorf("%w: settings file has no name", ErrInvalidValue)
	}
	if ps.Game == "" {
		return nil, fmt.Errorf("%w: settings for %s have no game", ErrInvalidValue, ps.Name)
	}
	return &ps, nil
}

// Options returns the raw option values from the section for the player's game.
func (ps *PlayerSettings) Options() (map[string]any, error) {
	section, ok := ps.Sections[ps.Game]
	if !ok || section == nil {
		return map[string]any{}, nil
	}
	raw, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: section %s must be a mapping", ErrInvalidValue, ps.Game)
	}
	return raw, nil
}

// Resolve resolves the player's options against defs. Missing options take
// their default value. Every problem found is reported, not just the first.
func (ps *PlayerSettings) Resolve(defs *Definitions, rng *rand.Rand) (map[string]int, error) {
	raw, err := ps.Options()
	if err != nil {
		return nil, err
	}
	return ResolveAll(defs, raw, rng)
}

// ResolveAll resolves raw option values against defs.
func ResolveAll(defs *Definitions, raw map[string]any, rng *rand.Rand) (map[string]int, error) {
	var errs []error

	unknown := make([]string, 0)
	for k := range raw {
		if _, ok := defs.Get(k); !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownOption, k))
	}

	values := make(map[string]int, defs.Len())
	for _, k := range defs.Keys() {
		r, _ := defs.Get(k)
		v, err := r.Resolve(raw[k], rng)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[k] = v
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return values, nil
}
