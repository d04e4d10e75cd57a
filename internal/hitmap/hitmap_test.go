package hitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() Registry {
	return Registry{
		"M01": {X: 0.10, Y: 0.10},
		"M02": {X: 0.50, Y: 0.10},
		"M03": {X: 0.10, Y: 0.50},
	}
}

func TestLocate(t *testing.T) {
	testCases := []struct {
		name     string
		point    Position
		radius   float64
		expected string
		hit      bool
	}{
		{name: "Direct hit", point: Position{X: 0.10, Y: 0.10}, radius: 0.03, expected: "M01", hit: true},
		{name: "Near miss inside radius", point: Position{X: 0.52, Y: 0.11}, radius: 0.03, expected: "M02", hit: true},
		{name: "Nearest but outside radius", point: Position{X: 0.30, Y: 0.30}, radius: 0.03, hit: false},
		{name: "Distance equal to radius is a miss", point: Position{X: 0.13, Y: 0.10}, radius: 0.03, hit: false},
		{name: "Empty registry", point: Position{X: 0.10, Y: 0.10}, radius: 0.03, hit: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg := testRegistry()
			if tc.name == "Empty registry" {
				reg = Registry{}
			}
			id, ok := Locate(tc.point, reg, tc.radius)
			assert.Equal(t, tc.hit, ok)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestLocate_DeterministicTieBreak(t *testing.T) {
	// Two positions exactly equidistant from the probe point.
	reg := Registry{
		"B": {X: 0.20, Y: 0.10},
		"A": {X: 0.00, Y: 0.10},
	}
	probe := Position{X: 0.10, Y: 0.10}

	first, ok := Locate(probe, reg, 0.5)
	assert.True(t, ok)
	for i := 0; i < 10; i++ {
		id, ok := Locate(probe, reg, 0.5)
		assert.True(t, ok)
		assert.Equal(t, first, id, "ties must resolve the same way every call")
	}
	assert.Equal(t, "A", first, "sorted key order wins the tie")
}

func TestFromPixels(t *testing.T) {
	p := FromPixels(400, 150, 800, 600)
	assert.Equal(t, Position{X: 0.5, Y: 0.25}, p)

	assert.Equal(t, Position{}, FromPixels(10, 10, 0, 600))
}
