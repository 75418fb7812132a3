// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector chooses which scored paragraphs of a document are kept.
package selector

import (
	"sort"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

// Select returns the paragraphs to keep for one document, in rank order.
//
// Candidates scoring at or below scoreFloor are discarded. The rest are
// ranked by score descending, keeping encounter order among equal scores,
// and accepted in rank order until the first one that would push the total
// length past budget. Selection stops there: later, shorter candidates are
// not considered. The candidates slice is not modified.
func Select(candidates []types.Paragraph, budget, scoreFloor int) []types.Paragraph {
	ranked := make([]types.Paragraph, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > scoreFloor {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	total := 0
	for i, p := range ranked {
		n := p.Len()
		if total+n > budget {
			return ranked[:i:i]
		}
		total += n
	}
	return ranked
}
