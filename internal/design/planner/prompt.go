package planner

import (
	"encoding/json"
	"fmt"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// BuildPrompt renders the user prompt for a plan generation call. The brief is
// embedded as indented JSON so the model sees exactly the fields the user has
// confirmed so far.
func BuildPrompt(brief schema.DesignBrief) string {
	briefJSON, err := json.MarshalIndent(brief, "", "  ")
	if err != nil {
		briefJSON = []byte("{}")
	}

	return fmt.Sprintf(`Based on the following furniture design brief, generate a professional-grade build plan with precise dimensions, materials, joinery methods, and assembly instructions. Your response should be comprehensive and ready for workshop implementation.

DESIGN BRIEF:
%s

PLEASE PROVIDE:

1. COMPONENTS: List all furniture components with:
   - Precise dimensions (length x width x thickness) with appropriate tolerances
   - Material specifications
   - Quantity needed
   - Special considerations for each component

2. MATERIALS: Detail all required materials:
   - Wood species, grade, and finish recommendations
   - Sheet goods specifications (plywood grade, thickness)
   - Finishing materials (stains, oils, varnishes)

3. HARDWARE: Specify all hardware with exact sizes and quantities:
   - Fasteners (screws, bolts, nails)
   - Hinges, pulls, knobs
   - Specialty hardware (drawer slides, shelf pins)

4. JOINERY: Detail all joinery methods:
   - Type (mortise and tenon, dovetail, etc.)
   - Dimensions and tolerances
   - Strength considerations

5. CUT LIST: Provide a workshop-ready cut list:
   - Component name and part name
   - Exact dimensions
   - Grain direction considerations
   - Quantity
   - Material

6. BILL OF MATERIALS: Include a complete BOM:
   - Item name and type
   - Quantity
   - Unit cost estimates (if available)
   - Total cost estimates

7. ASSEMBLY INSTRUCTIONS: Provide step-by-step assembly instructions:
   - Logical ordering of steps
   - Components and tools required for each step
   - Clear descriptions
   - Special considerations or warnings

Return your response as a complete BuildPlan JSON object with the following structure:
{
  "id": "string (UUID)",
  "userId": "string",
  "planName": "string",
  "designBrief": { /* the input brief */ },
  "createdAt": "ISO date string",
  "updatedAt": "ISO date string",
  "components": [ /* array of component objects */ ],
  "materials": [ /* array of material objects */ ],
  "hardware": [ /* array of hardware objects */ ],
  "joinery": [ /* array of joinery method objects */ ],
  "cutList": [ /* array of cut list items */ ],
  "billOfMaterials": [ /* array of BOM items */ ],
  "assemblyInstructions": [ /* array of assembly step objects */ ],
  "status": "Draft",
  "version": 1
}

Do not include any fields beyond those listed. Ensure all dimensions are appropriate for the furniture type, follow ergonomic standards, and all components work together structurally. Consider wood movement in your design and joinery choices.`, briefJSON)
}
