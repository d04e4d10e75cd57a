package hitmap

import (
	"math"
	"sort"
)

// Position is a point in the map's normalized coordinate space, where both
// axes run 0..1 across the reference image. Hit testing is therefore
// independent of whatever pixel size the map is rendered at.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Registry maps table identifiers to their reference positions.
type Registry map[string]Position

// FromPixels converts a click in a width×height pixel viewport into the
// normalized space. Non-positive dimensions yield the zero position.
func FromPixels(x, y, width, height float64) Position {
	if width <= 0 || height <= 0 {
		return Position{}
	}
	return Position{X: x / width, Y: y / height}
}

// Locate returns the identifier of the registered position nearest to p,
// provided that distance is strictly under radius; a miss returns false.
// Click coordinates are imprecise, so a generous nearest-neighbor search is
// more robust than exact containment. Keys are visited in sorted order so an
// exact distance tie resolves deterministically for a given registry.
func Locate(p Position, registry Registry, radius float64) (string, bool) {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestDist := math.Inf(1)
	for _, id := range ids {
		pos := registry[id]
		d := math.Hypot(pos.X-p.X, pos.Y-p.Y)
		if d < bestDist {
			best = id
			bestDist = d
		}
	}

	if best == "" || bestDist >= radius {
		return "", false
	}
	return best, true
}
