package usecase

import (
	"cmp"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

// MergeLanguages sums per-repository byte counts into one ranking.
//
// Maps are consumed in the given order and a language's position among equal
// totals is the position where it was first seen, so the same input always
// ranks the same way. A language reported with 0 bytes still gets an entry.
func MergeLanguages(maps []*domain.LanguageBytes) domain.RankedDistribution {
	totals := orderedmap.New[string, int64]()
	for _, m := range maps {
		if m == nil {
			continue
		}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			sum, _ := totals.Get(pair.Key)
			totals.Set(pair.Key, sum+pair.Value)
		}
	}

	ranked := make(domain.RankedDistribution, 0, totals.Len())
	for pair := totals.Oldest(); pair != nil; pair = pair.Next() {
		ranked = append(ranked, domain.LanguageTotal{Language: pair.Key, Bytes: pair.Value})
	}
	slices.SortStableFunc(ranked, func(a, b domain.LanguageTotal) int {
		return cmp.Compare(b.Bytes, a.Bytes)
	})
	return ranked
}
