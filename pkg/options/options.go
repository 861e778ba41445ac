package options

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

var (
	ErrOutOfRange    = errors.New("option value out of range")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid option value")
)

// Range is an integer option bounded by Min and Max (inclusive).
type Range struct {
	Key         string `json:"key" yaml:"key"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max"`
	Default     int    `json:"default" yaml:"default"`
}

// Validate checks that v is within the declared bounds.
func (r Range) Validate(v int) error {
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: %s=%d, expected %d-%d", ErrOutOfRange, r.Key, v, r.Min, r.Max)
	}
	return nil
}

// Resolve turns a raw settings value into a concrete option value.
// Accepted values are integers (or numeric strings), and the keywords
// default, min, max, random, random-low and random-high.
func (r Range) Resolve(raw any, rng *rand.Rand) (int, error) {
	var v int
	switch val := raw.(type) {
	case nil:
		return r.Default, nil
	case int:
		v = val
	case int64:
		v = int(val)
	case uint64:
		v = int(val)
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%w: %s=%v is not a whole number", ErrInvalidValue, r.Key, val)
		}
		v = int(val)
	case string:
		return r.resolveKeyword(val, rng)
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidValue, r.Key, raw)
	}

	if err := r.Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r Range) resolveKeyword(s string, rng *rand.Rand) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "", "default":
		return r.Default, nil
	case "min":
		return r.Min, nil
	case "max":
		return r.Max, nil
	case "random", "random-low", "random-high":
		if rng == nil {
			return 0, fmt.Errorf("%w: %s=%q needs a random source", ErrInvalidValue, r.Key, s)
		}
		a := r.Min + rng.IntN(r.Max-r.Min+1)
		if s == "random" {
			return a, nil
		}
		b := r.Min + rng.IntN(r.Max-r.Min+1)
		if s == "random-low" {
			return min(a, b), nil
		}
		return max(a, b), nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, r.Key, s)
	}
	if err := r.Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Definitions is the option registry. Iteration follows registration order.
type Definitions struct {
	keys   []string
	ranges map[string]Range
}

func NewDefinitions() *Definitions {
	return &Definitions{ranges: make(map[string]Range)}
}

// Set registers r, replacing any option already registered under r.Key.
func (d *Definitions) Set(r Range) {
	if d.ranges == nil {
		d.ranges = make(map[string]Range)
	}
	if _, exists := d.ranges[r.Key]; !exists {
		d.keys = append(d.keys, r.Key)
	}
	d.ranges[r.Key] = r
}

func (d *Definitions) Get(key string) (Range, bool) {
	r, ok := d.ranges[key]
	return r, ok
}

func (d *Definitions) Keys() []string {
	return append([]string(nil), d.keys...)
}

func (d *Definitions) Len() int {
	return len(d.keys)
}

// Defaults returns every registered option at its default value.
func (d *Definitions) Defaults() map[string]int {
	values := make(map[string]int, len(d.keys))
	for _, k := range d.keys {
		values[k] = d.ranges[k].Default
	}
	return values
}
