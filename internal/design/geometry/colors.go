package geometry

import "github.com/woodgrain-labs/furnplan-backend/internal/design/schema"

// DefaultColor is the fallback display color when a component has no
// resolvable material: a generic wood brown.
const DefaultColor = "#8B4513"

// Common species mapped to display colors.
var materialColors = map[string]string{
	"Oak":      "#D4A76A",
	"Walnut":   "#6F4E37",
	"Maple":    "#E8D4AD",
	"Cherry":   "#A52A2A",
	"Pine":     "#EADC9F",
	"Mahogany": "#C04000",
}

// MaterialColor resolves a component's material reference to a display color.
// Unknown or absent materials fall back to defaultColor rather than erroring;
// the visualization must always render something plausible.
func MaterialColor(materialID string, materials []schema.MaterialModel, defaultColor string) string {
	if defaultColor == "" {
		defaultColor = DefaultColor
	}
	if materialID == "" {
		return defaultColor
	}

	for _, m := range materials {
		if m.ID != materialID {
			continue
		}
		if c, ok := materialColors[m.Name]; ok {
			return c
		}
		return defaultColor
	}
	return defaultColor
}
