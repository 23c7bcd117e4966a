// Package palette owns the category-to-color mapping for board display.
package palette

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// DefaultColor is the display fallback for categories without an entry.
const DefaultColor = "white"

// Colors is the fixed palette, in assignment-preference order.
var Colors = []string{
	"black",
	"blue",
	"cyan",
	"green",
	"magenta",
	"red",
	"white",
	"yellow",
}

var (
	ErrInvalidColor    = errors.New("invalid color")
	ErrUnknownCategory = errors.New("unknown category")
)

// Registry maps category names to palette colors. Entries are created
// lazily on first use and never garbage-collected; a category keeps
// its color after its last referencing task is deleted.
type Registry struct {
	colors map[string]string
	pick   func(n int) int
}

// Option configures a Registry.
type Option func(*Registry)

// WithPick replaces the random index source used once the whole
// palette is in use. Tests inject a deterministic pick.
func WithPick(pick func(n int) int) Option {
	return func(r *Registry) {
		if pick != nil {
			r.pick = pick
		}
	}
}

// NewRegistry constructs a registry seeded with existing entries,
// typically loaded from the color store.
func NewRegistry(colors map[string]string, opts ...Option) *Registry {
	r := &Registry{
		colors: make(map[string]string, len(colors)),
		pick:   rand.IntN,
	}
	for category, color := range colors {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		r.colors[category] = color
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Get returns the color for a category, or DefaultColor when no entry
// exists. A missing entry is the defined display fallback, never an
// error.
func (r *Registry) Get(category string) string {
	if color, ok := r.colors[category]; ok && color != "" {
		return color
	}
	return DefaultColor
}

// Has reports whether the category has an entry.
func (r *Registry) Has(category string) bool {
	_, ok := r.colors[category]
	return ok
}

// Ensure assigns a color to the category if it has none and returns
// the resulting color. Assignment prefers the first palette color not
// present in the current value set; once every palette color is in
// use it falls back to a uniform random choice over the whole
// palette. Calling Ensure for an already-colored category is a no-op.
func (r *Registry) Ensure(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultColor
	}
	if color, ok := r.colors[category]; ok {
		return color
	}

	used := make(map[string]struct{}, len(r.colors))
	for _, color := range r.colors {
		used[color] = struct{}{}
	}
	for _, color := range Colors {
		if _, taken := used[color]; !taken {
			r.colors[category] = color
			return color
		}
	}
	color := Colors[r.pick(len(Colors))]
	r.colors[category] = color
	return color
}

// Recolor overwrites the color of an existing category.
func (r *Registry) Recolor(category, newColor string) error {
	if !slices.Contains(Colors, newColor) {
		return fmt.Errorf("%w: %q is not in the palette", ErrInvalidColor, newColor)
	}
	if _, ok := r.colors[category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	r.colors[category] = newColor
	return nil
}

// Categories returns all known category names, sorted.
func (r *Registry) Categories() []string {
	out := make([]string, 0, len(r.colors))
	for category := range r.colors {
		out = append(out, category)
	}
	slices.Sort(out)
	return out
}

// Snapshot returns a copy of the mapping for persistence.
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, len(r.colors))
	for category, color := range r.colors {
		out[category] = color
	}
	return out
}

// Len returns the number of category entries.
func (r *Registry) Len() int {
	return len(r.colors)
}
