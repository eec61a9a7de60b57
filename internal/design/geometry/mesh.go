package geometry

import (
	"fmt"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// MeshInstance is the record shape the renderer consumes: one positioned,
// colored box per physical part.
type MeshInstance struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   [3]float64 `json:"position"`
	Dimensions [3]float64 `json:"dimensions"`
	Color      string     `json:"color"`
}

// Deriver turns validated build plans into renderer-ready mesh instances.
// It is stateless; both knobs are presentation settings.
type Deriver struct {
	SceneScale   float64
	DefaultColor string
}

func NewDeriver(sceneScale float64, defaultColor string) *Deriver {
	if sceneScale <= 0 {
		sceneScale = DefaultSceneScale
	}
	if defaultColor == "" {
		defaultColor = DefaultColor
	}
	return &Deriver{SceneScale: sceneScale, DefaultColor: defaultColor}
}

// Derive computes the mesh instance for one physical part. The same inputs
// always produce the same output.
func (g *Deriver) Derive(comp schema.ComponentModel, materials []schema.MaterialModel, ordinal int) MeshInstance {
	d := ParseDimensionsScaled(comp.Dimensions, g.SceneScale)

	id := comp.ID
	if id == "" {
		id = fmt.Sprintf("component-%d", ordinal)
	}
	name := comp.Name
	if name == "" {
		name = fmt.Sprintf("Component %d", ordinal)
	}

	return MeshInstance{
		ID:         id,
		Name:       name,
		Position:   ComponentPosition(comp.Name, d, ordinal),
		Dimensions: ComponentExtent(comp.Name, d),
		Color:      MaterialColor(comp.MaterialID, materials, g.DefaultColor),
	}
}

// BuildModel expands a plan's components into positioned instances. A
// component with quantity N > 1 becomes N instances with ids "origID-0"
// through "origID-(N-1)", each derived at its own ordinal so repeated parts
// (legs, shelves) land in distinct positions. A quantity <= 1 component keeps
// its id and is placed by its position in the component list, which keeps
// unrelated single parts from stacking onto each other under the default
// placement rule.
func (g *Deriver) BuildModel(plan *schema.BuildPlan) []MeshInstance {
	if plan == nil || len(plan.Components) == 0 {
		return nil
	}

	out := make([]MeshInstance, 0, len(plan.Components))
	for idx, comp := range plan.Components {
		qty := int(comp.Quantity)
		if qty > 1 {
			for i := 0; i < qty; i++ {
				inst := comp
				if comp.ID == "" {
					inst.ID = fmt.Sprintf("component-%d", i)
				} else {
					inst.ID = fmt.Sprintf("%s-%d", comp.ID, i)
				}
				out = append(out, g.Derive(inst, plan.Materials, i))
			}
			continue
		}
		out = append(out, g.Derive(comp, plan.Materials, idx))
	}
	return out
}
