// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment turns classified outline entries into page-range
// segments for a chosen split level.
package segment

import (
	"fmt"
	"sort"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// Candidate is an entry chosen as a segment boundary together with its
// position in the chapter/section hierarchy.
type Candidate struct {
	Entry types.ClassifiedEntry

	// ChapterOrdinal is the 1-based position of the enclosing chapter.
	ChapterOrdinal int

	// SectionOrdinal is the 1-based position inside the chapter, or 0 when
	// the chapter itself is the unit.
	SectionOrdinal int
}

// Selection is the result of Select.
type Selection struct {
	Candidates []Candidate
	Problems   []types.Problem
}

type chapterGroup struct {
	chapter  types.ClassifiedEntry
	sections []types.ClassifiedEntry
}

// Select groups entries into chapters with their sections, following tree
// order: a section belongs to the most recent chapter before it. It returns
// the candidates for level.
//
// At section level a chapter without sections contributes itself, so its
// pages stay covered. A section that precedes every chapter is promoted to
// a chapter or rejected according to orphans.
func Select(entries []types.ClassifiedEntry, level types.SplitLevel, orphans types.OrphanPolicy) Selection {
	ordered := make([]types.ClassifiedEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	var sel Selection
	var groups []*chapterGroup
	for _, e := range ordered {
		switch e.Tag {
		case types.TagChapter:
			groups = append(groups, &chapterGroup{chapter: e})
		case types.TagSection:
			if len(groups) > 0 {
				g := groups[len(groups)-1]
				g.sections = append(g.sections, e)
				continue
			}
			if orphans == types.OrphanReject {
				sel.Problems = append(sel.Problems, types.Problem{
					Kind:    types.ProblemOrphan,
					Segment: e.Title,
					Message: fmt.Sprintf("section at page %d has no enclosing chapter; rejected", e.TargetPage),
				})
				continue
			}
			sel.Problems = append(sel.Problems, types.Problem{
				Kind:    types.ProblemOrphan,
				Segment: e.Title,
				Message: fmt.Sprintf("section at page %d has no enclosing chapter; promoted to chapter", e.TargetPage),
			})
			e.Tag = types.TagChapter
			groups = append(groups, &chapterGroup{chapter: e})
		}
	}

	for i, g := range groups {
		if level == types.LevelChapter || len(g.sections) == 0 {
			sel.Candidates = append(sel.Candidates, Candidate{Entry: g.chapter, ChapterOrdinal: i + 1})
			continue
		}
		for j, s := range g.sections {
			sel.Candidates = append(sel.Candidates, Candidate{Entry: s, ChapterOrdinal: i + 1, SectionOrdinal: j + 1})
		}
	}
	return sel
}
