package planner

import (
	"context"
	"log"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// Logger writes request-scoped log lines for plan generation. Every line
// carries the request id and, once known, the requesting user.
type Logger struct {
	requestID string
	userID    string
}

// NewLogger creates a logger bound to the request in ctx.
func NewLogger(ctx context.Context) *Logger {
	requestID := "unknown"
	if rid, ok := ctx.Value("request_id").(string); ok && rid != "" {
		requestID = rid
	}
	return &Logger{requestID: requestID}
}

// WithUser returns a copy of the logger that tags lines with the user id.
func (l *Logger) WithUser(userID string) *Logger {
	cp := *l
	cp.userID = userID
	return &cp
}

func (l *Logger) prefix() string {
	p := "request_id=" + l.requestID
	if l.userID != "" {
		p += " user=" + l.userID
	}
	return p
}

// LogError logs a generation failure.
func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] %s operation=%s error=%v", l.prefix(), operation, err)
}

// LogWarn logs a recoverable condition, such as the mock plan being served.
func (l *Logger) LogWarn(operation string, message string) {
	log.Printf("[warn] %s operation=%s message=%s", l.prefix(), operation, message)
}

// LogInfof logs a formatted info line.
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] %s operation=%s "+format, append([]interface{}{l.prefix(), operation}, args...)...)
}

// LogViolations logs each schema violation of a rejected plan document on
// its own line so individual paths stay searchable.
func (l *Logger) LogViolations(operation string, violations []schema.Violation) {
	for _, v := range violations {
		log.Printf("[warn] %s operation=%s violation=%q", l.prefix(), operation, v.String())
	}
}
