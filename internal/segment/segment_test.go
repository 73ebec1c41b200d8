// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

func chapter(title string, page, order int) types.ClassifiedEntry {
	return types.ClassifiedEntry{Title: title, TargetPage: page, Order: order, Tag: types.TagChapter}
}

func section(title string, page, order int) types.ClassifiedEntry {
	return types.ClassifiedEntry{Title: title, Depth: 1, TargetPage: page, Order: order, Tag: types.TagSection}
}

type span struct {
	label      string
	start, end int
}

func spans(segs []types.Segment) []span {
	out := make([]span, len(segs))
	for i, s := range segs {
		out[i] = span{s.Label, s.StartPage, s.EndPage}
	}
	return out
}

func plan(entries []types.ClassifiedEntry, level types.SplitLevel, total int) Result {
	sel := Select(entries, level, types.OrphanPromote)
	return Resolve(sel.Candidates, total, types.LeadingDrop)
}

func TestResolve_ChapterLevel(t *testing.T) {
	entries := []types.ClassifiedEntry{
		chapter("第1章 绪论", 0, 0),
		chapter("第2章 方法", 10, 1),
	}
	res := plan(entries, types.LevelChapter, 20)

	assert.Equal(t, []span{
		{"第1章 绪论", 0, 9},
		{"第2章 方法", 10, 19},
	}, spans(res.Segments))
	assert.Zero(t, res.DroppedPages)
	assert.Empty(t, res.Problems)
}

func TestResolve_SectionLevel(t *testing.T) {
	entries := []types.ClassifiedEntry{
		chapter("Chapter 1", 0, 0),
		section("Section 1.1", 2, 1),
		section("Section 1.2", 5, 2),
	}
	res := plan(entries, types.LevelSection, 8)

	assert.Equal(t, []span{
		{"Section 1.1", 2, 4},
		{"Section 1.2", 5, 7},
	}, spans(res.Segments))
	assert.Equal(t, 2, res.DroppedPages, "pages before the first section are dropped")
	assert.Equal(t, 1, res.Segments[0].ChapterOrdinal)
	assert.Equal(t, 1, res.Segments[0].SectionOrdinal)
	assert.Equal(t, 2, res.Segments[1].SectionOrdinal)
}

func TestResolve_SharedTargetPage(t *testing.T) {
	entries := []types.ClassifiedEntry{
		chapter("Intro", 0, 0),
		chapter("Errata", 3, 1),
		chapter("Body", 3, 2),
	}
	res := plan(entries, types.LevelChapter, 10)

	require.Len(t, res.Segments, 3)
	assert.Equal(t, []span{
		{"Intro", 0, 2},
		{"Errata", 3, 3},
		{"Body", 3, 9},
	}, spans(res.Segments))
	assert.True(t, res.Segments[1].Degenerate)
	assert.False(t, res.Segments[2].Degenerate)

	require.Len(t, res.Problems, 1)
	assert.Equal(t, types.ProblemDegenerate, res.Problems[0].Kind)
	assert.Equal(t, "Errata", res.Problems[0].Segment)
}

func TestResolve_StableTies(t *testing.T) {
	cands := []Candidate{
		{Entry: chapter("first", 4, 0)},
		{Entry: chapter("second", 4, 1)},
		{Entry: chapter("zero", 0, 2)},
	}
	res := Resolve(cands, 6, types.LeadingDrop)
	labels := []string{res.Segments[0].Label, res.Segments[1].Label, res.Segments[2].Label}
	assert.Equal(t, []string{"zero", "first", "second"}, labels)
}

func TestResolve_LeadingPolicy(t *testing.T) {
	cands := []Candidate{{Entry: chapter("Chapter 1", 3, 0), ChapterOrdinal: 1}}

	t.Run("drop", func(t *testing.T) {
		res := Resolve(cands, 10, types.LeadingDrop)
		assert.Equal(t, []span{{"Chapter 1", 3, 9}}, spans(res.Segments))
		assert.Equal(t, 3, res.DroppedPages)
	})

	t.Run("keep", func(t *testing.T) {
		res := Resolve(cands, 10, types.LeadingKeep)
		require.Len(t, res.Segments, 2)
		assert.True(t, res.Segments[0].Leading)
		assert.Equal(t, []span{{"", 0, 2}, {"Chapter 1", 3, 9}}, spans(res.Segments))
		assert.Zero(t, res.DroppedPages)
	})
}

func TestResolve_Empty(t *testing.T) {
	assert.Empty(t, Resolve(nil, 10, types.LeadingDrop).Segments)
	assert.Empty(t, Resolve([]Candidate{{Entry: chapter("x", 0, 0)}}, 0, types.LeadingDrop).Segments)
}

func TestResolve_ClampsTargets(t *testing.T) {
	cands := []Candidate{
		{Entry: chapter("a", -2, 0)},
		{Entry: chapter("b", 50, 1)},
	}
	res := Resolve(cands, 5, types.LeadingDrop)
	assert.Equal(t, []span{{"a", 0, 3}, {"b", 4, 4}}, spans(res.Segments))
}

func TestSelect_SectionLevelChapterFallback(t *testing.T) {
	entries := []types.ClassifiedEntry{
		chapter("Preface", 0, 0),
		chapter("Chapter 1", 2, 1),
		section("1.1", 3, 2),
		section("1.2", 6, 3),
		chapter("Chapter 2", 9, 4),
	}
	sel := Select(entries, types.LevelSection, types.OrphanPromote)
	require.Len(t, sel.Candidates, 4)

	got := make([]span, len(sel.Candidates))
	for i, c := range sel.Candidates {
		got[i] = span{c.Entry.Title, c.ChapterOrdinal, c.SectionOrdinal}
	}
	assert.Equal(t, []span{
		{"Preface", 1, 0},
		{"1.1", 2, 1},
		{"1.2", 2, 2},
		{"Chapter 2", 3, 0},
	}, got)

	res := Resolve(sel.Candidates, 12, types.LeadingDrop)
	assert.Equal(t, []span{
		{"Preface", 0, 2},
		{"1.1", 3, 5},
		{"1.2", 6, 8},
		{"Chapter 2", 9, 11},
	}, spans(res.Segments))
}

func TestSelect_ChapterLevelIgnoresSections(t *testing.T) {
	entries := []types.ClassifiedEntry{
		chapter("Chapter 1", 0, 0),
		section("1.1", 1, 1),
		chapter("Chapter 2", 4, 2),
		{Title: "deep", Depth: 2, TargetPage: 5, Order: 3, Tag: types.TagUnclassified},
	}
	sel := Select(entries, types.LevelChapter, types.OrphanPromote)
	require.Len(t, sel.Candidates, 2)
	assert.Equal(t, "Chapter 1", sel.Candidates[0].Entry.Title)
	assert.Equal(t, "Chapter 2", sel.Candidates[1].Entry.Title)
	assert.Equal(t, 2, sel.Candidates[1].ChapterOrdinal)
}

func TestSelect_FlatOutlineMixedStyles(t *testing.T) {
	// All entries at depth 0; titles decide the hierarchy.
	entries := []types.ClassifiedEntry{
		chapter("1 Introduction", 0, 0),
		{Title: "1.1 Scope", TargetPage: 1, Order: 1, Tag: types.TagSection},
		{Title: "1.2 Terms", TargetPage: 3, Order: 2, Tag: types.TagSection},
		chapter("第2章 方法", 5, 3),
	}
	sel := Select(entries, types.LevelSection, types.OrphanPromote)
	res := Resolve(sel.Candidates, 8, types.LeadingDrop)
	assert.Equal(t, []span{
		{"1.1 Scope", 1, 2},
		{"1.2 Terms", 3, 4},
		{"第2章 方法", 5, 7},
	}, spans(res.Segments))
	assert.Equal(t, 1, res.DroppedPages)
}

func TestSelect_OrphanSections(t *testing.T) {
	entries := []types.ClassifiedEntry{
		section("1.1 Stray", 0, 0),
		chapter("Chapter 2", 4, 1),
	}

	t.Run("promote", func(t *testing.T) {
		sel := Select(entries, types.LevelChapter, types.OrphanPromote)
		require.Len(t, sel.Candidates, 2)
		assert.Equal(t, types.TagChapter, sel.Candidates[0].Entry.Tag)
		require.Len(t, sel.Problems, 1)
		assert.Equal(t, types.ProblemOrphan, sel.Problems[0].Kind)
		assert.Contains(t, sel.Problems[0].Message, "promoted")
	})

	t.Run("reject", func(t *testing.T) {
		sel := Select(entries, types.LevelChapter, types.OrphanReject)
		require.Len(t, sel.Candidates, 1)
		assert.Equal(t, "Chapter 2", sel.Candidates[0].Entry.Title)
		require.Len(t, sel.Problems, 1)
		assert.Contains(t, sel.Problems[0].Message, "rejected")
	})
}

// randomEntries builds a valid outline: strictly increasing chapter pages,
// each chapter with zero or more strictly increasing section pages.
func randomEntries(r *rand.Rand, total int) []types.ClassifiedEntry {
	var entries []types.ClassifiedEntry
	page := r.Intn(3)
	order := 0
	for page < total {
		entries = append(entries, chapter("c", page, order))
		order++
		page += 1 + r.Intn(3)
		for s := r.Intn(3); s > 0 && page < total; s-- {
			entries = append(entries, section("s", page, order))
			order++
			page += 1 + r.Intn(3)
		}
	}
	return entries
}

func TestResolve_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		total := 1 + r.Intn(40)
		entries := randomEntries(r, total)
		if len(entries) == 0 {
			continue
		}
		for _, level := range []types.SplitLevel{types.LevelChapter, types.LevelSection} {
			res := plan(entries, level, total)
			segs := res.Segments
			require.NotEmpty(t, segs)
			assert.Empty(t, res.Problems)

			// Contiguous, gap-free, ending on the last page.
			for i := 0; i+1 < len(segs); i++ {
				assert.Equal(t, segs[i].EndPage+1, segs[i+1].StartPage)
			}
			assert.Equal(t, total-1, segs[len(segs)-1].EndPage)
			assert.Equal(t, res.DroppedPages, segs[0].StartPage)

			// Page counts add up to the covered pages.
			sum := 0
			for _, s := range segs {
				assert.LessOrEqual(t, s.StartPage, s.EndPage)
				sum += s.PageCount()
			}
			assert.Equal(t, total-res.DroppedPages, sum)

			// Concatenated ranges reproduce the page sequence.
			var pages []int
			for _, s := range segs {
				for p := s.StartPage; p <= s.EndPage; p++ {
					pages = append(pages, p)
				}
			}
			for i, p := range pages {
				assert.Equal(t, res.DroppedPages+i, p)
			}
		}
	}
}
