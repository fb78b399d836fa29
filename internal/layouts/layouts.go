// Package layouts registers the built-in board layouts.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/tui-ladders/internal/layouts"
package layouts

// Default is the layout used when none is configured.
const Default = "classic"
