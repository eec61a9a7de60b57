package geometry

import (
	"regexp"
	"strconv"
)

// DefaultSceneScale is the divisor applied to matched inch values so that
// physical dimensions map onto a bounded visualization scale. It is a
// presentation constant, not a unit conversion: parsed values are still
// inches semantically, only the returned numbers are scaled for rendering.
const DefaultSceneScale = 24

// Dimensions is a parsed (length, width, thickness) triple in scene units.
// It is always complete; axes without a matched value carry defaults so
// downstream geometry code never branches on "missing".
type Dimensions struct {
	Length    float64
	Width     float64
	Thickness float64
}

var (
	rxLabelLength = regexp.MustCompile(`(?i)L:([\d.]+)\s*in`)
	rxLabelWidth  = regexp.MustCompile(`(?i)W:([\d.]+)\s*in`)
	rxLabelThick  = regexp.MustCompile(`(?i)T:([\d.]+)\s*in`)
	rxTriple      = regexp.MustCompile(`(?i)([\d.]+)\s*in\s*[×x]\s*([\d.]+)\s*in\s*[×x]\s*([\d.]+)\s*in`)
)

// ParseDimensions parses a free-form dimension string like
// "L:48in W:30in T:1.5in" using the default scene scale.
func ParseDimensions(s string) Dimensions {
	return ParseDimensionsScaled(s, DefaultSceneScale)
}

// ParseDimensionsScaled extracts length/width/thickness from s, dividing
// matched inch values by scale. Labeled tokens win per axis; an unlabeled
// "48in x 30in x 1.5in" triple fills only axes the labels left unset; any
// axis still unset keeps its default (1, 1, 0.1). Malformed numbers count as
// no match. Parsing never fails.
func ParseDimensionsScaled(s string, scale float64) Dimensions {
	d := Dimensions{Length: 1, Width: 1, Thickness: 0.1}
	if scale <= 0 {
		scale = DefaultSceneScale
	}

	lengthSet := capture(rxLabelLength, s, 1, scale, &d.Length)
	widthSet := capture(rxLabelWidth, s, 1, scale, &d.Width)
	thickSet := capture(rxLabelThick, s, 1, scale, &d.Thickness)

	if lengthSet && widthSet && thickSet {
		return d
	}

	if m := rxTriple.FindStringSubmatch(s); m != nil {
		if !lengthSet {
			setScaled(m[1], scale, &d.Length)
		}
		if !widthSet {
			setScaled(m[2], scale, &d.Width)
		}
		if !thickSet {
			setScaled(m[3], scale, &d.Thickness)
		}
	}

	return d
}

func capture(rx *regexp.Regexp, s string, group int, scale float64, dst *float64) bool {
	m := rx.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return setScaled(m[group], scale, dst)
}

func setScaled(raw string, scale float64, dst *float64) bool {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	*dst = v / scale
	return true
}
