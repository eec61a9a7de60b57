package brief

import (
	"fmt"
	"strings"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// IsNewDesign reports whether a message asks to abandon the current design
// and start over.
func IsNewDesign(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "new design") ||
		strings.Contains(lower, "start over") ||
		strings.Contains(lower, "start new")
}

// Respond produces the assistant's acknowledgement for a chat message, based
// on which brief facts the message touched. Rule-based; the generative model
// is only consulted for plan generation, not chat replies.
func Respond(message string, b schema.DesignBrief) string {
	lower := strings.ToLower(message)

	if IsNewDesign(message) {
		return "I've started a new design for you. What type of furniture would you like to create?"
	}

	if b.Material != "" && (strings.Contains(lower, strings.ToLower(b.Material)) || strings.Contains(lower, "material")) {
		return fmt.Sprintf("I've updated the material to %s. This will affect the appearance, durability, and cost of your furniture.", b.Material)
	}

	if b.Style != "" && (strings.Contains(lower, strings.ToLower(b.Style)) || strings.Contains(lower, "style")) {
		return fmt.Sprintf("I've set the style to %s. This will influence the overall design aesthetic and details.", b.Style)
	}

	if len(b.JoineryMethods) > 0 && mentionsJoinery(lower) {
		return fmt.Sprintf("I've updated the joinery methods to include %s. These techniques will affect the strength, appearance, and complexity of your build.",
			strings.Join(b.JoineryMethods, ", "))
	}

	if mentionsDimensions(lower) {
		if td := b.TargetDimensions; td != nil {
			var parts []string
			if td.Length != "" {
				parts = append(parts, fmt.Sprintf("length: %s%s", td.Length, td.Units))
			}
			if td.Width != "" {
				parts = append(parts, fmt.Sprintf("width: %s%s", td.Width, td.Units))
			}
			if td.Height != "" {
				parts = append(parts, fmt.Sprintf("height: %s%s", td.Height, td.Units))
			}
			if td.Depth != "" {
				parts = append(parts, fmt.Sprintf("depth: %s%s", td.Depth, td.Units))
			}
			if len(parts) > 0 {
				return fmt.Sprintf("I've updated the dimensions to %s. These measurements will be used to generate your build plan.", strings.Join(parts, ", "))
			}
		}
		return "I've noted your dimension requirements and will incorporate them into the design."
	}

	if b.Description != "" {
		return fmt.Sprintf("I've updated your design brief with: %q. I'll generate a detailed build plan based on all your specifications.", message)
	}

	return fmt.Sprintf("I've noted your request: %q. What other details would you like to specify for your furniture design?", message)
}

func mentionsJoinery(lower string) bool {
	for _, kw := range []string{"joinery", "joint", "dovetail", "mortise", "tenon"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func mentionsDimensions(lower string) bool {
	for _, kw := range []string{
		"tall", "height", "wide", "width", "long", "length", "deep", "depth",
		"inches", "feet", "cm",
	} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
