package planner

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLoggerTagsRequestAndUser(t *testing.T) {
	buf := captureLog(t)

	ctx := context.WithValue(context.Background(), "request_id", "req-7") //nolint:staticcheck
	logger := NewLogger(ctx).WithUser("user_42")
	logger.LogWarn("generate_plan", "empty model response")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-7")
	assert.Contains(t, out, "user=user_42")
	assert.Contains(t, out, "operation=generate_plan")
}

func TestLoggerFallsBackWithoutRequestID(t *testing.T) {
	buf := captureLog(t)

	NewLogger(context.Background()).LogWarn("generate_plan", "x")
	assert.Contains(t, buf.String(), "request_id=unknown")
}

func TestLoggerViolationsOnePerLine(t *testing.T) {
	buf := captureLog(t)

	logger := NewLogger(context.Background())
	logger.LogViolations("generate_plan", []schema.Violation{
		{Path: "$.surpriseField", Expected: "no such field", Actual: "true"},
		{Path: "$.components[0].color", Expected: "no such field", Actual: "string"},
	})

	out := buf.String()
	assert.Contains(t, out, "$.surpriseField")
	assert.Contains(t, out, "$.components[0].color")
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("violation=")))
}
