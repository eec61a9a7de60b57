package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

type fakeModel struct {
	response    json.RawMessage
	err         error
	prompt      string
	hadDeadline bool
}

func (f *fakeModel) GeneratePlan(ctx context.Context, prompt string) (json.RawMessage, error) {
	f.prompt = prompt
	_, f.hadDeadline = ctx.Deadline()
	return f.response, f.err
}

func testBrief() schema.DesignBrief {
	return schema.DesignBrief{
		Description:   "A walnut coffee table",
		FurnitureType: "Coffee Table",
		Material:      "Walnut",
	}
}

func validPlanJSON(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(MockPlan("user_from_model", testBrief()))
	require.NoError(t, err)
	return raw
}

func TestGenerateReturnsValidatedPlan(t *testing.T) {
	ResetMetrics()
	model := &fakeModel{response: validPlanJSON(t)}
	svc := NewService(model, false)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Len(t, plan.Components, 2)
	assert.Equal(t, schema.StatusDraft, plan.Status)
	assert.Equal(t, float64(1), plan.Version)
	assert.EqualValues(t, 1, GetMetrics().ModelCalls())
}

func TestGenerateStampsRequestingUser(t *testing.T) {
	model := &fakeModel{response: validPlanJSON(t)}
	svc := NewService(model, false)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	require.NoError(t, err)

	// Whatever userId the model emitted is overwritten.
	assert.Equal(t, "user_42", plan.UserID)
}

func TestGeneratePromptEmbedsBrief(t *testing.T) {
	model := &fakeModel{response: validPlanJSON(t)}
	svc := NewService(model, false)

	_, err := svc.Generate(context.Background(), "user_42", testBrief())
	require.NoError(t, err)

	assert.Contains(t, model.prompt, "DESIGN BRIEF:")
	assert.Contains(t, model.prompt, `"Walnut"`)
	assert.Contains(t, model.prompt, "ASSEMBLY INSTRUCTIONS")
}

func TestGenerateModelErrorIsUnavailable(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	svc := NewService(model, false)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	assert.Nil(t, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAIUnavailable))
	assert.False(t, errors.Is(err, ErrPlanInvalid))
}

func TestGenerateEmptyResponseWithoutMock(t *testing.T) {
	model := &fakeModel{response: json.RawMessage("")}
	svc := NewService(model, false)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, ErrAIUnavailable))
}

func TestGenerateEmptyResponseServesMock(t *testing.T) {
	ResetMetrics()
	model := &fakeModel{response: json.RawMessage("")}
	svc := NewService(model, true)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, "user_42", plan.UserID)
	assert.True(t, strings.HasPrefix(plan.ID, "plan_"))
	assert.EqualValues(t, 1, GetMetrics().MockPlansServed())

	// The mock must survive the same validation gate as model output.
	raw, err := json.Marshal(plan)
	require.NoError(t, err)
	_, violations := schema.DecodeBuildPlan(raw)
	assert.Empty(t, violations)
}

func TestGenerateInvalidDocumentIsRejected(t *testing.T) {
	ResetMetrics()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(validPlanJSON(t), &doc))
	doc["surpriseField"] = true
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	model := &fakeModel{response: raw}
	svc := NewService(model, true)

	plan, err := svc.Generate(context.Background(), "user_42", testBrief())
	assert.Nil(t, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlanInvalid))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Violations)
	assert.Equal(t, "$.surpriseField", ve.Violations[0].Path)
	assert.EqualValues(t, 1, GetMetrics().ValidationFailures())
}

func TestGenerateBoundsModelCall(t *testing.T) {
	model := &fakeModel{response: validPlanJSON(t)}
	svc := NewService(model, false)

	_, err := svc.Generate(context.Background(), "user_42", testBrief())
	require.NoError(t, err)
	assert.True(t, model.hadDeadline, "model call should carry a deadline")
}

func TestMockPlanFillsDefaults(t *testing.T) {
	plan := MockPlan("u1", schema.DesignBrief{Description: "A standard piece of furniture."})

	require.NotNil(t, plan.DesignBrief.TargetDimensions)
	assert.Equal(t, "in", plan.DesignBrief.TargetDimensions.Units)
	assert.Equal(t, "Oak", plan.Materials[0].Name)
	assert.Equal(t, "Plan for: A standard piece of ", plan.PlanName)
}
