package brief

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// Fixed extraction vocabularies. Matching is first-in-list-wins against the
// lowercased message, except joinery, which collects every match.
var furnitureTypes = []string{
	"table", "chair", "desk", "bookshelf", "cabinet", "dresser", "bed",
	"bench", "stool", "shelf", "nightstand", "coffee table", "dining table",
	"sideboard", "wardrobe",
}

var materialKeywords = []string{
	"walnut", "oak", "maple", "cherry", "pine", "mahogany", "birch", "ash",
	"cedar", "teak", "plywood", "mdf",
}

var styleKeywords = []string{
	"modern", "traditional", "mid-century", "rustic", "industrial",
	"scandinavian", "farmhouse", "contemporary", "minimalist", "art deco",
	"bohemian", "coastal",
}

var joineryKeywords = []string{
	"mortise and tenon", "dovetail", "pocket hole", "butt joint",
	"miter joint", "finger joint", "lap joint", "biscuit joint",
	"dowel joint", "tongue and groove",
}

var (
	rxDimension = regexp.MustCompile(`(\d+\.?\d*)\s*(inches|inch|in|cm|centimeters|mm|millimeters|feet|foot|ft)`)

	// Axis keyword immediately before a number ("width 36in", "length of 48in").
	rxAxisBefore = regexp.MustCompile(`(length|long|width|wide|height|tall|depth)\s*(?:of|:|=)?\s*$`)
	// Axis keyword immediately after a number ("36 inches wide", "4 feet long").
	rxAxisAfter = regexp.MustCompile(`^\s*(length|long|width|wide|height|tall|depth)`)
)

// DefaultBrief is the starting brief for a fresh session, before the user has
// said anything.
func DefaultBrief() schema.DesignBrief {
	return schema.DesignBrief{
		Description:      "A standard piece of furniture.",
		TargetDimensions: &schema.TargetDimensions{Units: "in"},
	}
}

// Extract scans a chat message for structured design facts and merges them
// into the current brief. Fields mentioned in the message win over prior
// values; untouched fields persist unchanged. The function is pure: the input
// brief is never mutated.
func Extract(message string, current schema.DesignBrief) schema.DesignBrief {
	lower := strings.ToLower(message)
	updated := cloneBrief(current)

	structured := false

	for _, ft := range furnitureTypes {
		if strings.Contains(lower, ft) {
			updated.FurnitureType = upperFirst(ft)
			structured = true
			break
		}
	}

	for _, mat := range materialKeywords {
		if strings.Contains(lower, mat) {
			updated.Material = upperFirst(mat)
			structured = true
			break
		}
	}

	for _, style := range styleKeywords {
		if strings.Contains(lower, style) {
			updated.Style = formatStyle(style)
			structured = true
			break
		}
	}

	var joinery []string
	for _, j := range joineryKeywords {
		if strings.Contains(lower, j) {
			joinery = append(joinery, formatJoinery(j))
		}
	}
	if len(joinery) > 0 {
		updated.JoineryMethods = joinery
		structured = true
	}

	if extractDimensions(lower, &updated) {
		structured = true
	}

	// Capture conversational context. A message with no structured content
	// (and enough length to be meaningful) becomes the description; a message
	// that did carry structured facts is still recorded when it differs from
	// the current description.
	if !structured {
		if len(message) > 10 {
			updated.Description = message
		}
	} else if current.Description != message {
		updated.Description = message
	}

	return updated
}

func extractDimensions(lower string, b *schema.DesignBrief) bool {
	matches := rxDimension.FindAllStringSubmatchIndex(lower, -1)
	if len(matches) == 0 {
		return false
	}

	td := schema.TargetDimensions{Units: "in"}
	if b.TargetDimensions != nil {
		td = *b.TargetDimensions
		if td.Units == "" {
			td.Units = "in"
		}
	}

	changed := false
	for _, idx := range matches {
		value := lower[idx[2]:idx[3]]
		unit := lower[idx[4]:idx[5]]

		switch {
		case strings.HasPrefix(unit, "in"):
			td.Units = "in"
		case strings.HasPrefix(unit, "cm"):
			td.Units = "cm"
		case strings.HasPrefix(unit, "mm"):
			td.Units = "mm"
		case strings.HasPrefix(unit, "ft") || strings.HasPrefix(unit, "f"):
			// Feet are converted to inches and the whole brief is
			// standardized to inches.
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			value = strconv.FormatFloat(v*12, 'f', -1, 64)
			td.Units = "in"
		}

		axis := axisKeyword(lower[:idx[0]], lower[idx[1]:])
		switch axis {
		case "length":
			td.Length = value
		case "width":
			td.Width = value
		case "height":
			td.Height = value
		case "depth":
			td.Depth = value
		default:
			// Positional fallback fills length, then width, then height.
			// Depth is only ever set by an explicit keyword.
			switch {
			case td.Length == "":
				td.Length = value
			case td.Width == "":
				td.Width = value
			case td.Height == "":
				td.Height = value
			default:
				continue
			}
		}
		changed = true
	}

	if changed {
		b.TargetDimensions = &td
	}
	return changed
}

// axisKeyword resolves the dimension axis named right next to a number,
// checking the text before the match first, then the text after it
// ("width 36in" and "36 inches wide" both resolve to width).
func axisKeyword(before, after string) string {
	if m := rxAxisBefore.FindStringSubmatch(before); m != nil {
		return canonicalAxis(m[1])
	}
	if m := rxAxisAfter.FindStringSubmatch(after); m != nil {
		return canonicalAxis(m[1])
	}
	return ""
}

func canonicalAxis(keyword string) string {
	switch keyword {
	case "length", "long":
		return "length"
	case "width", "wide":
		return "width"
	case "height", "tall":
		return "height"
	case "depth":
		return "depth"
	}
	return ""
}

func formatStyle(style string) string {
	words := strings.Split(style, "-")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func formatJoinery(j string) string {
	words := strings.Split(j, " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Replace(strings.Join(words, " "), "And", "and", 1)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cloneBrief(b schema.DesignBrief) schema.DesignBrief {
	out := b
	if b.TargetDimensions != nil {
		td := *b.TargetDimensions
		out.TargetDimensions = &td
	}
	if b.JoineryMethods != nil {
		out.JoineryMethods = append([]string(nil), b.JoineryMethods...)
	}
	return out
}
