package components

import "github.com/nmoreno/obligo/internal/tui/styles"

// ErrorBanner renders the store's error message above a view. An empty
// message renders nothing. The banner clears the next time an operation
// succeeds, so retrying is how the user dismisses it.
func ErrorBanner(width int, msg string) string {
	if msg == "" {
		return ""
	}
	return styles.ErrorStyle.Width(width).Render("✗ " + msg)
}
