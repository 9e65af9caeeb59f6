package chart

import (
	"html"
)

// Palette resolves the fill color of a language.
// colors.Map satisfies it and falls back to a neutral gray.
type Palette interface {
	Color(language string) string
}

const fontStack = "system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Noto Sans', sans-serif"

const compactFontStack = "system-ui, -apple-system, sans-serif"

// escape makes s safe in both text nodes and quoted attributes.
func escape(s string) string {
	return html.EscapeString(s)
}
