// Package colors resolves display colors for programming languages.
package colors

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Fallback is used for languages without a known color.
const Fallback = "#cccccc"

// ErrParse is returned when a color table cannot be decoded.
var ErrParse = errors.New("malformed language color table")

//go:embed languages_colors.json
var embedded []byte

// Map maps a language name to its color. It is never modified after loading.
type Map map[string]string

// Color returns the color for language, or Fallback when there is none.
func (m Map) Color(language string) string {
	if c, ok := m[language]; ok {
		return c
	}
	return Fallback
}

type entry struct {
	Color *string `json:"color"`
}

// Parse decodes a linguist-style color table:
//
//	{ "Go": { "color": "#00ADD8", "url": "..." }, "Text": { "color": null } }
//
// Languages whose color is null or absent are left out.
func Parse(data []byte) (Map, error) {
	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	m := make(Map, len(raw))
	for lang, e := range raw {
		if e.Color == nil || *e.Color == "" {
			continue
		}
		m[lang] = *e.Color
	}
	return m, nil
}

var (
	defaultOnce sync.Once
	defaultMap  Map
	defaultErr  error
)

// Default returns the color table compiled into the binary.
// It is decoded once per process.
func Default() (Map, error) {
	defaultOnce.Do(func() {
		defaultMap, defaultErr = Parse(embedded)
	})
	return defaultMap, defaultErr
}
