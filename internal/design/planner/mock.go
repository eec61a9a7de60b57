package planner

import (
	"fmt"
	"time"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// MockPlan builds a fixed illustrative table plan for development environments
// where no model endpoint is reachable. The plan passes the same schema
// validation the model output goes through.
func MockPlan(userID string, brief schema.DesignBrief) *schema.BuildPlan {
	now := time.Now().UTC().Format(time.RFC3339)

	name := brief.Description
	if len(name) > 20 {
		name = name[:20]
	}

	material := brief.Material
	if material == "" {
		material = "Oak"
	}

	if brief.TargetDimensions == nil {
		brief.TargetDimensions = &schema.TargetDimensions{Units: "in"}
	}

	return &schema.BuildPlan{
		ID:          fmt.Sprintf("plan_%d", time.Now().UnixMilli()),
		UserID:      userID,
		PlanName:    "Plan for: " + name,
		DesignBrief: brief,
		CreatedAt:   now,
		UpdatedAt:   now,
		Components: []schema.ComponentModel{
			{ID: "comp_1", Name: "Table Top", Quantity: 1, Dimensions: "L:48in W:30in T:1.5in", MaterialID: "mat_wood_01"},
			{ID: "comp_2", Name: "Leg", Quantity: 4, Dimensions: "L:28.5in W:2in T:2in", MaterialID: "mat_wood_01"},
		},
		Materials: []schema.MaterialModel{
			{ID: "mat_wood_01", Name: material, Type: schema.MaterialTypeLumber, Grade: "FAS"},
		},
		Hardware: []schema.HardwareModel{
			{
				MaterialModel: schema.MaterialModel{ID: "hw_01", Name: "Wood Screws", Type: schema.MaterialTypeHardware},
				Size:          "#8 x 1.25in",
			},
		},
		Joinery: []schema.JoineryModel{
			{ID: "join_01", Type: "Mortise and Tenon", Description: "For attaching legs to aprons (if any)"},
		},
		CutList: []schema.CutListItem{
			{ID: "cl_1", ComponentName: "Table Top", PartName: "Top Panel", Quantity: 1, Length: "48in", Width: "30in", Thickness: "1.5in", Material: material},
			{ID: "cl_2", ComponentName: "Leg", PartName: "Leg Blank", Quantity: 4, Length: "28.5in", Width: "2in", Thickness: "2in", Material: material},
		},
		BillOfMaterials: []schema.BillOfMaterialsItem{
			{ID: "bom_1", ItemID: "mat_wood_01", ItemName: material, ItemType: "Material", Quantity: 10, UnitCost: f64(12), TotalCost: f64(120)},
			{ID: "bom_2", ItemID: "hw_01", ItemName: "Wood Screws", ItemType: "Hardware", Quantity: 50, UnitCost: f64(0.1), TotalCost: f64(5)},
		},
		AssemblyInstructions: []schema.AssemblyStep{
			{StepNumber: 1, Title: "Prepare Legs", Description: "Cut legs to final dimensions.", ComponentsInvolved: []string{"Leg"}},
			{StepNumber: 2, Title: "Prepare Top", Description: "Cut and flatten table top.", ComponentsInvolved: []string{"Table Top"}},
			{StepNumber: 3, Title: "Assemble Base", Description: "Join legs and aprons.", ComponentsInvolved: []string{"Leg"}, HardwareUsed: []string{"Wood Screws"}},
			{StepNumber: 4, Title: "Attach Top", Description: "Attach top to base.", ComponentsInvolved: []string{"Table Top", "Leg"}},
		},
		ModelURL: "https://example.com/model.glb",
		Status:   schema.StatusDraft,
		Version:  1,
		Notes:    "Mock plan generated without a model call.",
	}
}

func f64(v float64) *float64 { return &v }
