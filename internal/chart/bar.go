package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

const (
	barCanvasWidth  = 700
	barHeight       = 12
	barGap          = 20
	barLabelX       = 10
	barStartX       = 120
	barRightPadding = 20
	barCountOffset  = 5

	// MaxBarWidth is the width of the rank-1 language's bar.
	MaxBarWidth = barCanvasWidth - barStartX - barRightPadding
)

// BarsHeight returns the canvas height of a bar chart with n entries.
func BarsHeight(n int) int {
	return (barHeight+barGap)*n + barGap
}

// BarWidth scales bytes against maxBytes to a pixel width.
// A non-positive maxBytes is treated as 1.
func BarWidth(bytes, maxBytes int64) int {
	if maxBytes <= 0 {
		maxBytes = 1
	}
	return int(math.Round(float64(bytes) / float64(maxBytes) * MaxBarWidth))
}

// RenderBars draws one animated bar per language in dist, in order.
// dist must already be ranked; its first entry sets the scale.
// An empty dist yields a valid document without bars.
func RenderBars(dist domain.RankedDistribution, palette Palette) []byte {
	maxBytes := dist.Max()

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	fmt.Fprintf(&buf, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		barCanvasWidth, BarsHeight(len(dist)))

	for i, e := range dist {
		y := barGap + i*(barHeight+barGap)
		w := BarWidth(e.Bytes, maxBytes)
		color := escape(palette.Color(e.Language))

		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="13" font-family="%s" fill='#333' alignment-baseline="hanging">%s</text>`+"\n",
			barLabelX, y, fontStack, escape(e.Language))
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="5" ry="5">`+"\n",
			barStartX, y, w, barHeight, color)
		fmt.Fprintf(&buf, `    <animate attributeName="width" from="0" to="%d" dur="0.6s" fill="freeze" />`+"\n", w)
		buf.WriteString("</rect>\n")
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="8" font-family="%s" alignment-baseline="middle" fill="%s">%d</text>`+"\n",
			barStartX+w+barCountOffset, y+barHeight/2, fontStack, color, e.Bytes)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
