// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LanguageBytes maps a language name to the number of bytes written in it
// for a single repository. Iteration follows the order the source listed
// the languages in.
type LanguageBytes = orderedmap.OrderedMap[string, int64]

// NewLanguageBytes builds a LanguageBytes from pairs, keeping their order.
// A language given twice keeps its first position and its last value.
func NewLanguageBytes(pairs ...LanguageTotal) *LanguageBytes {
	m := orderedmap.New[string, int64]()
	for _, p := range pairs {
		m.Set(p.Language, p.Bytes)
	}
	return m
}

// LanguageTotal is one (language, bytes) entry of a ranking.
type LanguageTotal struct {
	Language string `json:"language"`
	Bytes    int64  `json:"bytes"`
}

// RankedDistribution lists languages by total bytes, largest first.
// Languages with equal totals keep the order they were first seen in.
type RankedDistribution []LanguageTotal

// Total returns the sum of all byte counts.
func (d RankedDistribution) Total() int64 {
	var total int64
	for _, e := range d {
		total += e.Bytes
	}
	return total
}

// Max returns the byte count of the rank-1 language, or 0 when empty.
func (d RankedDistribution) Max() int64 {
	if len(d) == 0 {
		return 0
	}
	return d[0].Bytes
}
