package chart

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

// ErrNoData is returned by RenderCompact when there are no bytes to split.
var ErrNoData = errors.New("no data to render")

//go:embed animation.css
var animationCSS string

const (
	compactWidth      = 400
	compactPadding    = 20
	compactTitleY     = 30
	compactPaddingTop = 40
	compactBarY       = compactPaddingTop + 10
	compactBarHeight  = 10
	// The legend starts below a 20px band reserved under the bar.
	compactLegendY = compactBarY + 20 + 20

	legendColumns     = 2
	legendRowHeight   = 24
	legendDotRadius   = 6
	legendColumnWidth = compactWidth/legendColumns - 10

	// StackWidth is the width of the whole stacked bar.
	StackWidth = compactWidth - 2*compactPadding
)

// CompactHeight returns the canvas height of a compact chart with n entries.
func CompactHeight(n int) int {
	rows := (n + legendColumns - 1) / legendColumns
	return compactLegendY + rows*legendRowHeight
}

// SegmentWidths returns the rounded pixel width of each entry's share of the stacked bar.
func SegmentWidths(dist domain.RankedDistribution) ([]int, error) {
	total := dist.Total()
	if total <= 0 {
		return nil, ErrNoData
	}
	widths := make([]int, len(dist))
	for i, e := range dist {
		widths[i] = int(math.Round(float64(e.Bytes) / float64(total) * StackWidth))
	}
	return widths, nil
}

// RenderCompact draws dist as a stacked bar with rounded ends and a legend
// laid out row-major in two columns. It returns ErrNoData when dist is empty
// or every entry has zero bytes.
func RenderCompact(dist domain.RankedDistribution, palette Palette) ([]byte, error) {
	widths, err := SegmentWidths(dist)
	if err != nil {
		return nil, err
	}
	total := float64(dist.Total())
	height := CompactHeight(len(dist))

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", compactWidth, height)
	fmt.Fprintf(&buf, "<style>%s</style>\n", animationCSS)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="none" stroke='#ccc' stroke-width="1" rx="10" ry="10" />`+"\n",
		compactWidth-1, height-1)
	fmt.Fprintf(&buf, `<text id="title" x="%d" y="%d" font-size="18" font-weight="bold" fill='#2563eb' font-family="%s">Most Used Languages</text>`+"\n",
		compactPadding, compactTitleY, compactFontStack)

	// The capsule is drawn once as the gray track and once as the clip for
	// the segments, so only the two ends of the whole bar are rounded.
	fmt.Fprintf(&buf, `<defs>
    <clipPath id="roundedClip">
        <rect id="bar_back" x="%d" y="%d" width="%d" height="%d" rx="5" ry="5" />
    </clipPath>
</defs>
`, compactPadding, compactBarY, StackWidth, compactBarHeight)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" x="%d" y="%d" rx="5" ry="5" fill='#ccc' />`+"\n",
		StackWidth, compactBarHeight, compactPadding, compactBarY)
	buf.WriteString(`<g clip-path="url(#roundedClip)">` + "\n")
	x := compactPadding
	for i, e := range dist {
		fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" />`+"\n",
			x, compactBarY, widths[i], compactBarHeight, escape(palette.Color(e.Language)))
		x += widths[i]
	}
	buf.WriteString("</g>\n")

	buf.WriteString(`<g id="lang_legend">` + "\n")
	for i, e := range dist {
		col := i % legendColumns
		row := i / legendColumns
		lx := compactPadding + col*legendColumnWidth
		ly := compactLegendY + row*legendRowHeight
		percent := float64(e.Bytes) / total * 100

		fmt.Fprintf(&buf, `<circle cx="%d" cy="%d" r="%d" fill="%s" />`+"\n",
			lx+10, ly, legendDotRadius, escape(palette.Color(e.Language)))
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="13" font-family="%s" fill='#333'>%s %.2f%%</text>`+"\n",
			lx+legendDotRadius+20, ly+4, compactFontStack, escape(e.Language), percent)
	}
	buf.WriteString("</g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
