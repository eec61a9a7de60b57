package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDimensions_Labeled(t *testing.T) {
	d := ParseDimensions("L:48in W:30in T:1.5in")
	assert.InDelta(t, 48.0/24, d.Length, 1e-9)
	assert.InDelta(t, 30.0/24, d.Width, 1e-9)
	assert.InDelta(t, 1.5/24, d.Thickness, 1e-9)
}

func TestParseDimensions_LabeledAnyOrderAndCase(t *testing.T) {
	d := ParseDimensions("t:2in l:36in w:12in")
	assert.InDelta(t, 36.0/24, d.Length, 1e-9)
	assert.InDelta(t, 12.0/24, d.Width, 1e-9)
	assert.InDelta(t, 2.0/24, d.Thickness, 1e-9)
}

func TestParseDimensions_UnlabeledTriple(t *testing.T) {
	for _, s := range []string{
		"48in x 30in x 1.5in",
		"48in × 30in × 1.5in",
		"48 in x 30 in x 1.5 in",
	} {
		d := ParseDimensions(s)
		assert.InDelta(t, 48.0/24, d.Length, 1e-9, s)
		assert.InDelta(t, 30.0/24, d.Width, 1e-9, s)
		assert.InDelta(t, 1.5/24, d.Thickness, 1e-9, s)
	}
}

func TestParseDimensions_LabeledWinsOverTriple(t *testing.T) {
	// The label fixes width; the triple fills only the remaining axes.
	d := ParseDimensions("W:10in 48in x 30in x 1.5in")
	assert.InDelta(t, 48.0/24, d.Length, 1e-9)
	assert.InDelta(t, 10.0/24, d.Width, 1e-9)
	assert.InDelta(t, 1.5/24, d.Thickness, 1e-9)
}

func TestParseDimensions_Defaults(t *testing.T) {
	for _, s := range []string{"", "about yay big", "48cm x 30cm x 2cm", "L:in"} {
		d := ParseDimensions(s)
		assert.Equal(t, Dimensions{Length: 1, Width: 1, Thickness: 0.1}, d, s)
	}
}

func TestParseDimensions_PartialLabels(t *testing.T) {
	d := ParseDimensions("L:24in")
	assert.InDelta(t, 1.0, d.Length, 1e-9)
	assert.Equal(t, 1.0, d.Width)
	assert.Equal(t, 0.1, d.Thickness)
}

func TestParseDimensions_MalformedNumberFallsThrough(t *testing.T) {
	// "48.1.7" captures but does not parse; the axis keeps its default.
	d := ParseDimensions("L:48.1.7in")
	assert.Equal(t, 1.0, d.Length)
}

func TestParseDimensionsScaled_CustomScale(t *testing.T) {
	d := ParseDimensionsScaled("L:48in W:30in T:1.5in", 12)
	assert.InDelta(t, 4.0, d.Length, 1e-9)
	assert.InDelta(t, 2.5, d.Width, 1e-9)
	assert.InDelta(t, 0.125, d.Thickness, 1e-9)
}
