package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// Export sections.
const (
	SectionComponents = "components"
	SectionCutList    = "cutlist"
	SectionBOM        = "bom"
	SectionAssembly   = "assembly"
	SectionAll        = "all"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var ErrUnknownSection = fmt.Errorf("unknown export section")

// FileName is the download name for a section export, extension excluded.
func FileName(planName, section string) string {
	base := strings.Join(strings.Fields(planName), "_")
	if section == SectionAll || section == "" {
		return base
	}
	return base + "_" + section
}

// JSON renders a section of the plan (or the whole plan) as indented JSON.
func JSON(plan *schema.BuildPlan, section string) ([]byte, error) {
	var data any
	switch section {
	case SectionComponents:
		data = plan.Components
	case SectionCutList:
		data = plan.CutList
	case SectionBOM:
		data = plan.BillOfMaterials
	case SectionAssembly:
		data = plan.AssemblyInstructions
	case SectionAll, "":
		data = plan
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return json.MarshalIndent(data, "", "  ")
}

// CSV renders a section of the plan with its fixed column set. The whole-plan
// section exports a per-section count summary. An empty section yields an
// empty document.
func CSV(plan *schema.BuildPlan, section string) (string, error) {
	var headers []string
	var rows [][]string

	switch section {
	case SectionComponents:
		if len(plan.Components) == 0 {
			return "", nil
		}
		headers = []string{"Name", "Material", "Dimensions", "Quantity", "Description"}
		for _, c := range plan.Components {
			rows = append(rows, []string{
				c.Name, c.MaterialID, c.Dimensions, num(c.Quantity), c.Description,
			})
		}

	case SectionCutList:
		if len(plan.CutList) == 0 {
			return "", nil
		}
		headers = []string{"Component", "Part", "Material", "Length", "Width", "Thickness", "Quantity", "Notes"}
		for _, item := range plan.CutList {
			rows = append(rows, []string{
				item.ComponentName, item.PartName, item.Material,
				item.Length, item.Width, item.Thickness, num(item.Quantity), item.Notes,
			})
		}

	case SectionBOM:
		if len(plan.BillOfMaterials) == 0 {
			return "", nil
		}
		headers = []string{"Item", "Type", "Quantity", "Unit Cost", "Total Cost", "Supplier", "Notes"}
		for _, item := range plan.BillOfMaterials {
			rows = append(rows, []string{
				item.ItemName, item.ItemType, num(item.Quantity),
				cost(item.UnitCost), cost(item.TotalCost), item.Supplier, item.Notes,
			})
		}

	case SectionAssembly:
		if len(plan.AssemblyInstructions) == 0 {
			return "", nil
		}
		headers = []string{"Step", "Title", "Description", "Components", "Tools Required"}
		for _, step := range plan.AssemblyInstructions {
			rows = append(rows, []string{
				num(step.StepNumber), step.Title, step.Description,
				strings.Join(step.ComponentsInvolved, ", "),
				strings.Join(step.ToolsRequired, ", "),
			})
		}

	case SectionAll, "":
		headers = []string{"Section", "Count"}
		rows = [][]string{
			{"Components", strconv.Itoa(len(plan.Components))},
			{"Materials", strconv.Itoa(len(plan.Materials))},
			{"Hardware", strconv.Itoa(len(plan.Hardware))},
			{"Cut List Items", strconv.Itoa(len(plan.CutList))},
			{"Assembly Steps", strconv.Itoa(len(plan.AssemblyInstructions))},
		}

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	// Headers go out bare; every data cell is quoted with "" escaping.
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n"), nil
}

// num formats a count without trailing zeros; zero renders empty.
func num(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cost formats an optional money value with two decimals.
func cost(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
