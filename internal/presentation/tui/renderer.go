package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// Plain returns markdown untouched, for pipes and dumb terminals.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// NewRenderer styles markdown with glamour, picking a light or dark theme from the terminal.
// A width of zero keeps glamour's default wrapping.
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}
