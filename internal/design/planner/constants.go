package planner

import "time"

// GenerateTimeout bounds a full plan-generation model call.
const GenerateTimeout = 90 * time.Second
