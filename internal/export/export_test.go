package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

func money(v float64) *float64 { return &v }

func samplePlan() *schema.BuildPlan {
	return &schema.BuildPlan{
		ID:       "plan_1",
		PlanName: "Walnut Coffee Table",
		Components: []schema.ComponentModel{
			{ID: "c1", Name: "Table Top", Quantity: 1, Dimensions: "L:48in W:30in T:1.5in", MaterialID: "mat_1", Description: `The "show" surface`},
			{ID: "c2", Name: "Leg", Quantity: 4, Dimensions: "L:28.5in W:2in T:2in", MaterialID: "mat_1"},
		},
		Materials: []schema.MaterialModel{
			{ID: "mat_1", Name: "Walnut", Type: schema.MaterialTypeLumber},
		},
		CutList: []schema.CutListItem{
			{ID: "cl1", ComponentName: "Leg", PartName: "Leg Blank", Quantity: 4, Length: "28.5in", Width: "2in", Thickness: "2in", Material: "Walnut", Notes: "rough cut long"},
		},
		BillOfMaterials: []schema.BillOfMaterialsItem{
			{ID: "b1", ItemID: "mat_1", ItemName: "Walnut", ItemType: "Material", Quantity: 10, UnitCost: money(12.5), TotalCost: money(125)},
			{ID: "b2", ItemID: "hw_1", ItemName: "Screws", ItemType: "Hardware", Quantity: 50},
		},
		AssemblyInstructions: []schema.AssemblyStep{
			{StepNumber: 1, Title: "Prepare Legs", Description: "Cut to length.", ComponentsInvolved: []string{"Leg"}, ToolsRequired: []string{"Saw", "Jointer"}},
		},
		Status:  schema.StatusDraft,
		Version: 1,
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		section string
		want    string
	}{
		{SectionComponents, "Walnut_Coffee_Table_components"},
		{SectionCutList, "Walnut_Coffee_Table_cutlist"},
		{SectionAll, "Walnut_Coffee_Table"},
		{"", "Walnut_Coffee_Table"},
	}
	for _, tc := range cases {
		if got := FileName("Walnut Coffee Table", tc.section); got != tc.want {
			t.Errorf("FileName(%q) = %q, want %q", tc.section, got, tc.want)
		}
	}
}

func TestCSVComponents(t *testing.T) {
	out, err := CSV(samplePlan(), SectionComponents)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "Name,Material,Dimensions,Quantity,Description" {
		t.Errorf("header = %q", lines[0])
	}
	// Embedded quotes double up.
	if lines[1] != `"Table Top","mat_1","L:48in W:30in T:1.5in","1","The ""show"" surface"` {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != `"Leg","mat_1","L:28.5in W:2in T:2in","4",""` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestCSVCutList(t *testing.T) {
	out, err := CSV(samplePlan(), SectionCutList)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out, "\n")
	if lines[0] != "Component,Part,Material,Length,Width,Thickness,Quantity,Notes" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `"Leg","Leg Blank","Walnut","28.5in","2in","2in","4","rough cut long"` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSVBOM(t *testing.T) {
	out, err := CSV(samplePlan(), SectionBOM)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out, "\n")
	if lines[0] != "Item,Type,Quantity,Unit Cost,Total Cost,Supplier,Notes" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `"Walnut","Material","10","12.50","125.00","",""` {
		t.Errorf("row = %q", lines[1])
	}
	// Missing costs render empty, not zero.
	if lines[2] != `"Screws","Hardware","50","","","",""` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestCSVAssembly(t *testing.T) {
	out, err := CSV(samplePlan(), SectionAssembly)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out, "\n")
	if lines[0] != "Step,Title,Description,Components,Tools Required" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `"1","Prepare Legs","Cut to length.","Leg","Saw, Jointer"` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSVAllSummary(t *testing.T) {
	out, err := CSV(samplePlan(), SectionAll)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Section,Count",
		`"Components","2"`,
		`"Materials","1"`,
		`"Hardware","0"`,
		`"Cut List Items","1"`,
		`"Assembly Steps","1"`,
	}, "\n")
	if out != want {
		t.Errorf("summary =\n%s\nwant\n%s", out, want)
	}
}

func TestCSVEmptySection(t *testing.T) {
	plan := samplePlan()
	plan.CutList = nil

	out, err := CSV(plan, SectionCutList)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("want empty document, got %q", out)
	}
}

func TestCSVUnknownSection(t *testing.T) {
	if _, err := CSV(samplePlan(), "joinery"); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestJSONSection(t *testing.T) {
	out, err := JSON(samplePlan(), SectionComponents)
	if err != nil {
		t.Fatal(err)
	}

	var comps []schema.ComponentModel
	if err := json.Unmarshal(out, &comps); err != nil {
		t.Fatal(err)
	}
	if len(comps) != 2 || comps[0].Name != "Table Top" {
		t.Errorf("unexpected components: %+v", comps)
	}
}

func TestJSONWholePlan(t *testing.T) {
	out, err := JSON(samplePlan(), SectionAll)
	if err != nil {
		t.Fatal(err)
	}

	var plan schema.BuildPlan
	if err := json.Unmarshal(out, &plan); err != nil {
		t.Fatal(err)
	}
	if plan.PlanName != "Walnut Coffee Table" {
		t.Errorf("plan name = %q", plan.PlanName)
	}
}
