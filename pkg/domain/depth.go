package domain

import (
	"strconv"
	"strings"
)

// Recursion limits for tree builds. Externally supplied depths are clamped
// into [0, AbsoluteMaxDepth] rather than rejected; unparsable input falls
// back to DefaultMaxDepth. Out-of-range input is never an error.
const (
	DefaultMaxDepth  = 10
	AbsoluteMaxDepth = 25
)

// ClampDepth bounds a requested recursion depth to [0, AbsoluteMaxDepth].
func ClampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > AbsoluteMaxDepth {
		return AbsoluteMaxDepth
	}
	return depth
}

// ParseDepth interprets a raw query value as a recursion depth.
// Empty or unparsable input yields DefaultMaxDepth; numeric input is clamped.
func ParseDepth(raw string) int {
	if raw == "" {
		return DefaultMaxDepth
	}
	depth, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultMaxDepth
	}
	return ClampDepth(depth)
}

// ParseFlag reports whether raw represents an affirmative flag.
// Empty input yields def.
func ParseFlag(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
