package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// ErrAIUnavailable means the model endpoint could not be reached or returned
// nothing usable. Callers should tell the user to retry rather than treat the
// brief as bad.
var ErrAIUnavailable = errors.New("ai service unavailable")

// ErrPlanInvalid means the model responded but the document failed schema
// validation and was rejected whole.
var ErrPlanInvalid = errors.New("generated plan failed validation")

// ValidationError carries the individual schema violations behind an
// ErrPlanInvalid result.
type ValidationError struct {
	Violations []schema.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d violation(s)", ErrPlanInvalid, len(e.Violations))
}

func (e *ValidationError) Unwrap() error { return ErrPlanInvalid }

type modelClient interface {
	GeneratePlan(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Service turns a confirmed design brief into a validated build plan.
type Service struct {
	model     modelClient
	allowMock bool
}

// NewService creates a planner service. allowMock enables the fixed
// development plan when the model returns an empty document; it must be off
// in production.
func NewService(model modelClient, allowMock bool) *Service {
	return &Service{model: model, allowMock: allowMock}
}

// Generate calls the model with a prompt built from the brief, validates the
// returned document against the build plan schema, and stamps the plan with
// the requesting user. The document is accepted or rejected as a whole; no
// partial plans are returned.
func (s *Service) Generate(ctx context.Context, userID string, brief schema.DesignBrief) (*schema.BuildPlan, error) {
	logger := NewLogger(ctx).WithUser(userID)

	prompt := BuildPrompt(brief)

	ctx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.model.GeneratePlan(ctx, prompt)
	recordModelCall(time.Since(start), err)
	if err != nil {
		logger.LogError("generate_plan", err)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		if s.allowMock {
			logger.LogWarn("generate_plan", "empty model response, serving mock plan")
			recordMockPlan()
			return MockPlan(userID, brief), nil
		}
		logger.LogError("generate_plan", errors.New("empty model response"))
		return nil, fmt.Errorf("%w: empty model response", ErrAIUnavailable)
	}

	plan, violations := schema.DecodeBuildPlan(raw)
	if len(violations) > 0 {
		recordValidationFailure()
		logger.LogViolations("generate_plan", violations)
		return nil, &ValidationError{Violations: violations}
	}

	// Ownership comes from the authenticated request, not from whatever the
	// model put in the document.
	plan.UserID = userID

	logger.LogInfof("generate_plan", "plan_id=%s components=%d latency_ms=%.0f",
		plan.ID, len(plan.Components), float64(time.Since(start).Milliseconds()))
	return plan, nil
}
