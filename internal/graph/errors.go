package graph

import "fmt"

// Error codes carried by ConfigError.
const (
	CodeDuplicateAction   = "DUPLICATE_ACTION"
	CodeDuplicateBehavior = "DUPLICATE_BEHAVIOR"
	CodeDanglingAction    = "DANGLING_ACTION"
	CodeDanglingBehavior  = "DANGLING_BEHAVIOR"
	CodeEmptyPoses        = "EMPTY_POSES"
	CodeBadChildren       = "BAD_CHILDREN"
	CodeBadDuration       = "BAD_DURATION"
	CodeNegativeWeight    = "NEGATIVE_WEIGHT"
	CodeBadKeyword        = "BAD_KEYWORD"
	CodeTooManyFlags      = "TOO_MANY_FLAGS"
	CodeNoNeutral         = "NO_NEUTRAL"
	CodeHiddenNeutral     = "HIDDEN_NEUTRAL"
	CodeActionCycle       = "ACTION_CYCLE"
	CodeSchema            = "SCHEMA"
)

// ConfigError reports a sprite pack that cannot become a valid graph.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func configErrorf(code, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Message: fmt.Sprintf(format, args...)}
}
