package board

import "fmt"

// ConfigError reports a malformed board layout.
// It is only ever returned at construction time, never by Resolve.
type ConfigError struct {
	Field  string // "size", "snakes" or "ladders"
	Square int    // Offending square (or size value)
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: invalid %s at %d: %s", e.Field, e.Square, e.Reason)
}
