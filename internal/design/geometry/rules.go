package geometry

import "strings"

// The derivation rules are heuristic: a component's semantic name picks a box
// extent rule and a placement rule. Each list is ordered and evaluated
// first-match-wins, with the default rule last, so the priority between
// overlapping names ("back leg") is fixed and testable.

// baseHeight anchors vertical placement.
const baseHeight = 0.0

type extentRule struct {
	match  func(name string) bool
	extent func(d Dimensions) [3]float64
}

type placementRule struct {
	match    func(name string) bool
	position func(d Dimensions, ordinal int) [3]float64
}

func nameContains(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, sub := range subs {
			if strings.Contains(name, sub) {
				return true
			}
		}
		return false
	}
}

func always(string) bool { return true }

// Extent rules, in priority order. Extents are (x, y, z) box sizes.
var extentRules = []extentRule{
	{
		// Legs are long and thin, standing vertical.
		match: nameContains("leg"),
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Thickness, d.Length, d.Thickness}
		},
	},
	{
		// Back panels are thinner than a structural member.
		match: nameContains("back"),
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Length, d.Width, d.Thickness / 2}
		},
	},
	{
		match: nameContains("drawer"),
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Length * 0.8, d.Thickness * 3, d.Width * 0.8}
		},
	},
	{
		match: nameContains("shelf"),
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Length, d.Thickness, d.Width * 0.9}
		},
	},
	{
		match: nameContains("apron", "rail"),
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Length, d.Thickness, d.Width / 4}
		},
	},
	{
		// Flat panel: table tops, surfaces, seats.
		match: always,
		extent: func(d Dimensions) [3]float64 {
			return [3]float64{d.Length, d.Thickness, d.Width}
		},
	},
}

// Placement rules, in priority order. Positions are (x, y, z) box centers.
var placementRules = []placementRule{
	{
		match: nameContains("top", "surface"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			return [3]float64{0, baseHeight + 0.75, 0}
		},
	},
	{
		// Four predefined corners; ordinal modulo 4 selects the corner, so a
		// quantity-4 leg component covers all four corners exactly once and a
		// fifth instance wraps back onto corner 0.
		match: nameContains("leg"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			corners := [4][3]float64{
				{-d.Length/2 + d.Thickness/2, baseHeight, -d.Width/2 + d.Thickness/2},
				{d.Length/2 - d.Thickness/2, baseHeight, -d.Width/2 + d.Thickness/2},
				{-d.Length/2 + d.Thickness/2, baseHeight, d.Width/2 - d.Thickness/2},
				{d.Length/2 - d.Thickness/2, baseHeight, d.Width/2 - d.Thickness/2},
			}
			return corners[ordinal%4]
		},
	},
	{
		// Shelves stack upward by a fixed increment so they never overlap.
		match: nameContains("shelf"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			return [3]float64{0, baseHeight + 0.3 + float64(ordinal)*0.3, 0}
		},
	},
	{
		match: nameContains("back"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			return [3]float64{0, baseHeight + 0.5, -d.Width / 2}
		},
	},
	{
		// Drawers stack like shelves, offset toward the front.
		match: nameContains("drawer"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			return [3]float64{0, baseHeight + 0.4 + float64(ordinal)*0.3, d.Width / 4}
		},
	},
	{
		// Edge midpoints between the legs: front, back, left, right.
		match: nameContains("apron", "rail"),
		position: func(d Dimensions, ordinal int) [3]float64 {
			edges := [4][3]float64{
				{0, baseHeight + 0.6, -d.Width/2 + d.Thickness/2},
				{0, baseHeight + 0.6, d.Width/2 - d.Thickness/2},
				{-d.Length/2 + d.Thickness/2, baseHeight + 0.6, 0},
				{d.Length/2 - d.Thickness/2, baseHeight + 0.6, 0},
			}
			return edges[ordinal%4]
		},
	},
	{
		match: always,
		position: func(d Dimensions, ordinal int) [3]float64 {
			return [3]float64{0, baseHeight + float64(ordinal)*0.2, 0}
		},
	},
}

// ComponentExtent derives the box size for a component name. The name is
// matched case-insensitively.
func ComponentExtent(name string, d Dimensions) [3]float64 {
	lower := strings.ToLower(name)
	for _, r := range extentRules {
		if r.match(lower) {
			return r.extent(d)
		}
	}
	// Unreachable: the default rule always matches.
	return [3]float64{d.Length, d.Thickness, d.Width}
}

// ComponentPosition derives the box center for a component name and its
// ordinal index among repeated instances.
func ComponentPosition(name string, d Dimensions, ordinal int) [3]float64 {
	lower := strings.ToLower(name)
	for _, r := range placementRules {
		if r.match(lower) {
			return r.position(d, ordinal)
		}
	}
	return [3]float64{0, baseHeight, 0}
}
