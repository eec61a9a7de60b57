package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanJSON = `{
  "id": "plan_1",
  "userId": "user_1",
  "planName": "Walnut Dining Table",
  "designBrief": {
    "description": "A walnut dining table",
    "furnitureType": "Table",
    "material": "Walnut",
    "targetDimensions": {"length": "48", "width": "30", "units": "in"},
    "joineryMethods": ["Mortise and Tenon"]
  },
  "createdAt": "2024-05-01T10:00:00Z",
  "updatedAt": "2024-05-01T10:00:00Z",
  "components": [
    {"id": "comp_1", "name": "Table Top", "quantity": 1, "dimensions": "L:48in W:30in T:1.5in", "materialId": "mat_1"},
    {"id": "comp_2", "name": "Leg", "quantity": 4, "dimensions": "L:28.5in W:2in T:2in", "materialId": "mat_1"}
  ],
  "materials": [
    {"id": "mat_1", "name": "Walnut", "type": "Lumber", "grade": "FAS"}
  ],
  "hardware": [
    {"id": "hw_1", "name": "Wood Screws", "type": "Hardware", "size": "#8 x 1.25in"}
  ],
  "joinery": [
    {"id": "join_1", "type": "Mortise and Tenon", "description": "Legs to aprons"}
  ],
  "cutList": [
    {"id": "cl_1", "componentName": "Table Top", "partName": "Top Panel", "quantity": 1,
     "length": "48in", "width": "30in", "thickness": "1.5in", "material": "Walnut", "grainDirection": "Parallel"}
  ],
  "billOfMaterials": [
    {"id": "bom_1", "itemId": "mat_1", "itemName": "Walnut", "itemType": "Material", "quantity": 10, "unitCost": 12, "totalCost": 120}
  ],
  "assemblyInstructions": [
    {"stepNumber": 1, "title": "Prepare Legs", "description": "Cut legs to final dimensions.", "componentsInvolved": ["Leg"]}
  ],
  "modelUrl": "https://example.com/model.glb",
  "status": "Draft",
  "version": 1
}`

func mutatePlan(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(validPlanJSON), &m))
	mutate(m)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestDecodeBuildPlan_Valid(t *testing.T) {
	plan, vs := DecodeBuildPlan([]byte(validPlanJSON))
	require.Empty(t, vs)
	require.NotNil(t, plan)

	assert.Equal(t, "plan_1", plan.ID)
	assert.Equal(t, "Walnut Dining Table", plan.PlanName)
	assert.Equal(t, "Walnut", plan.DesignBrief.Material)
	assert.Len(t, plan.Components, 2)
	assert.Equal(t, float64(4), plan.Components[1].Quantity)
	assert.Equal(t, StatusDraft, plan.Status)
}

func TestDecodeBuildPlan_RoundTrip(t *testing.T) {
	plan, vs := DecodeBuildPlan([]byte(validPlanJSON))
	require.Empty(t, vs)

	b, err := json.Marshal(plan)
	require.NoError(t, err)

	again, vs := DecodeBuildPlan(b)
	require.Empty(t, vs)
	assert.Equal(t, plan, again)
}

func TestDecodeBuildPlan_UndeclaredTopLevelField(t *testing.T) {
	raw := mutatePlan(t, func(m map[string]any) {
		m["sneakyExtra"] = "value"
	})

	plan, vs := DecodeBuildPlan(raw)
	assert.Nil(t, plan)
	require.Len(t, vs, 1)
	assert.Equal(t, "$.sneakyExtra", vs[0].Path)
	assert.Equal(t, "declared field", vs[0].Expected)
}

func TestDecodeBuildPlan_UndeclaredNestedField(t *testing.T) {
	raw := mutatePlan(t, func(m map[string]any) {
		comp := m["components"].([]any)[0].(map[string]any)
		comp["color"] = "red"
	})

	plan, vs := DecodeBuildPlan(raw)
	assert.Nil(t, plan)
	require.Len(t, vs, 1)
	assert.Equal(t, "$.components[0].color", vs[0].Path)
}

func TestDecodeBuildPlan_HardwareMustBeHardware(t *testing.T) {
	// A hardware entry shaped as a perfectly valid Material still fails when
	// its type is not the Hardware literal.
	raw := mutatePlan(t, func(m map[string]any) {
		hw := m["hardware"].([]any)[0].(map[string]any)
		hw["type"] = "Lumber"
		delete(hw, "size")
	})

	plan, vs := DecodeBuildPlan(raw)
	assert.Nil(t, plan)
	require.Len(t, vs, 1)
	assert.Equal(t, "$.hardware[0].type", vs[0].Path)
	assert.Equal(t, `literal "Hardware"`, vs[0].Expected)
}

func TestDecodeBuildPlan_Failures(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(m map[string]any)
		wantPath string
	}{
		{
			name:     "missing required field",
			mutate:   func(m map[string]any) { delete(m, "planName") },
			wantPath: "$.planName",
		},
		{
			name: "empty id",
			mutate: func(m map[string]any) {
				m["id"] = ""
			},
			wantPath: "$.id",
		},
		{
			name: "numeric string quantity",
			mutate: func(m map[string]any) {
				m["components"].([]any)[0].(map[string]any)["quantity"] = "1"
			},
			wantPath: "$.components[0].quantity",
		},
		{
			name: "zero quantity",
			mutate: func(m map[string]any) {
				m["components"].([]any)[0].(map[string]any)["quantity"] = float64(0)
			},
			wantPath: "$.components[0].quantity",
		},
		{
			name: "unknown status",
			mutate: func(m map[string]any) {
				m["status"] = "InProgress"
			},
			wantPath: "$.status",
		},
		{
			name: "lowercase status is not normalized",
			mutate: func(m map[string]any) {
				m["status"] = "draft"
			},
			wantPath: "$.status",
		},
		{
			name: "bad timestamp",
			mutate: func(m map[string]any) {
				m["updatedAt"] = "yesterday"
			},
			wantPath: "$.updatedAt",
		},
		{
			name: "bad model url",
			mutate: func(m map[string]any) {
				m["modelUrl"] = "not a url"
			},
			wantPath: "$.modelUrl",
		},
		{
			name: "bad grain direction",
			mutate: func(m map[string]any) {
				m["cutList"].([]any)[0].(map[string]any)["grainDirection"] = "Diagonal"
			},
			wantPath: "$.cutList[0].grainDirection",
		},
		{
			name: "fractional version",
			mutate: func(m map[string]any) {
				m["version"] = 1.5
			},
			wantPath: "$.version",
		},
		{
			name: "brief with unknown field",
			mutate: func(m map[string]any) {
				m["designBrief"].(map[string]any)["mood"] = "cozy"
			},
			wantPath: "$.designBrief.mood",
		},
		{
			name: "assembly step without components",
			mutate: func(m map[string]any) {
				delete(m["assemblyInstructions"].([]any)[0].(map[string]any), "componentsInvolved")
			},
			wantPath: "$.assemblyInstructions[0].componentsInvolved",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, vs := DecodeBuildPlan(mutatePlan(t, tc.mutate))
			assert.Nil(t, plan)
			require.NotEmpty(t, vs)

			found := false
			for _, v := range vs {
				if v.Path == tc.wantPath {
					found = true
				}
			}
			assert.Truef(t, found, "expected a violation at %s, got %v", tc.wantPath, vs)
		})
	}
}

func TestDecodeBuildPlan_NotJSON(t *testing.T) {
	plan, vs := DecodeBuildPlan([]byte("here is your plan!"))
	assert.Nil(t, plan)
	require.Len(t, vs, 1)
	assert.Equal(t, "$", vs[0].Path)
}

func TestDecodeBuildPlan_NotAnObject(t *testing.T) {
	plan, vs := DecodeBuildPlan([]byte(`[1,2,3]`))
	assert.Nil(t, plan)
	require.Len(t, vs, 1)
	assert.Equal(t, "object", vs[0].Expected)
}

func TestViolationString(t *testing.T) {
	v := Violation{Path: "$.status", Expected: "one of Draft|PendingReview|Approved|Archived", Actual: `string "draft"`}
	assert.True(t, strings.HasPrefix(v.String(), "$.status: expected one of"))
}
