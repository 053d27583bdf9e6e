package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders an issue description for terminal display.
// Returns the text unchanged when colors are off or rendering fails, so
// piped output stays parseable.
func RenderMarkdown(markdown string) string {
	if !ShouldUseColor() {
		return markdown
	}

	// Cap the wrap width; very wide lines read poorly.
	const maxReadableWidth = 100
	wrapWidth := Width(80)
	if wrapWidth > maxReadableWidth {
		wrapWidth = maxReadableWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
