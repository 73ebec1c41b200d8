// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"sort"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// Result holds the segments computed by Resolve.
type Result struct {
	Segments []types.Segment

	// DroppedPages counts leading pages left out under LeadingDrop.
	DroppedPages int

	Problems []types.Problem
}

// Resolve computes one segment per candidate. Candidates are ordered by
// target page with ties kept in their given order. Each segment runs from
// its target to the page before the next target; the last one ends at
// totalPages-1. Pages before the first target are dropped or returned as
// an unlabeled leading segment according to leading. Two candidates on the
// same page give the earlier one a single-page degenerate segment.
func Resolve(cands []Candidate, totalPages int, leading types.LeadingPolicy) Result {
	var res Result
	if len(cands) == 0 || totalPages <= 0 {
		return res
	}

	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	for i := range sorted {
		sorted[i].Entry.TargetPage = clamp(sorted[i].Entry.TargetPage, 0, totalPages-1)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Entry.TargetPage < sorted[j].Entry.TargetPage
	})

	if first := sorted[0].Entry.TargetPage; first > 0 {
		if leading == types.LeadingKeep {
			res.Segments = append(res.Segments, types.Segment{
				StartPage: 0,
				EndPage:   first - 1,
				Leading:   true,
			})
		} else {
			res.DroppedPages = first
		}
	}

	for i, c := range sorted {
		start := c.Entry.TargetPage
		end := totalPages - 1
		if i+1 < len(sorted) {
			end = sorted[i+1].Entry.TargetPage - 1
		}
		seg := types.Segment{
			Label:          c.Entry.Title,
			StartPage:      start,
			EndPage:        end,
			Source:         c.Entry,
			ChapterOrdinal: c.ChapterOrdinal,
			SectionOrdinal: c.SectionOrdinal,
		}
		if end < start {
			seg.EndPage = start
			seg.Degenerate = true
			res.Problems = append(res.Problems, types.Problem{
				Kind:    types.ProblemDegenerate,
				Segment: c.Entry.Title,
				Message: fmt.Sprintf("shares page %d with the next entry; collapsed to a single page", start),
			})
		}
		res.Segments = append(res.Segments, seg)
	}
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
