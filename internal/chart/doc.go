// Package chart renders a ranked language distribution as standalone SVG.
//
// Two layouts are provided:
//   - RenderBars: one horizontal bar per language, scaled to the largest language.
//   - RenderCompact: a single stacked bar with a two-column legend of percentages.
//
// Renderers build the whole document in memory and return it; WriteFile
// stores a document so that readers never observe a partially written file.
package chart
