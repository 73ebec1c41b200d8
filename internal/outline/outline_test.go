// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// fakeSource implements Source with canned items.
type fakeSource struct {
	pages int
	items []Item
	err   error
}

func (f *fakeSource) PageCount() int { return f.pages }

func (f *fakeSource) OutlineItems() ([]Item, error) {
	return f.items, f.err
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
		want []types.OutlineNode
	}{
		{
			name: "converts pages to zero-based and assigns depth",
			src: &fakeSource{pages: 8, items: []Item{
				{Title: "Chapter 1", Page: 1, Kids: []Item{
					{Title: "Section 1.1", Page: 3},
					{Title: "Section 1.2", Page: 6},
				}},
			}},
			want: []types.OutlineNode{
				{Title: "Chapter 1", Depth: 0, TargetPage: 0, Children: []types.OutlineNode{
					{Title: "Section 1.1", Depth: 1, TargetPage: 2},
					{Title: "Section 1.2", Depth: 1, TargetPage: 5},
				}},
			},
		},
		{
			name: "clamps child pointing before its parent",
			src: &fakeSource{pages: 10, items: []Item{
				{Title: "A", Page: 5, Kids: []Item{{Title: "A.1", Page: 2}}},
			}},
			want: []types.OutlineNode{
				{Title: "A", TargetPage: 4, Children: []types.OutlineNode{
					{Title: "A.1", Depth: 1, TargetPage: 4},
				}},
			},
		},
		{
			name: "clamps targets past the last page and unresolved targets",
			src: &fakeSource{pages: 3, items: []Item{
				{Title: "none", Page: 0},
				{Title: "far", Page: 99},
			}},
			want: []types.OutlineNode{
				{Title: "none", TargetPage: 0},
				{Title: "far", TargetPage: 2},
			},
		},
		{
			name: "empty outline yields empty tree",
			src:  &fakeSource{pages: 5},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_SourceError(t *testing.T) {
	_, err := Extract(&fakeSource{pages: 1, err: errors.New("broken outline dict")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken outline dict")
}

func sampleTree() []types.OutlineNode {
	return []types.OutlineNode{
		{Title: "1", Depth: 0, TargetPage: 0, Children: []types.OutlineNode{
			{Title: "1.1", Depth: 1, TargetPage: 1, Children: []types.OutlineNode{
				{Title: "1.1.1", Depth: 2, TargetPage: 2},
			}},
			{Title: "1.2", Depth: 1, TargetPage: 4},
		}},
		{Title: "2", Depth: 0, TargetPage: 6},
	}
}

func TestFlattenPreOrder(t *testing.T) {
	flat := Flatten(sampleTree())
	titles := make([]string, len(flat))
	for i, n := range flat {
		titles[i] = n.Title
		assert.Nil(t, n.Children)
	}
	assert.Equal(t, []string{"1", "1.1", "1.1.1", "1.2", "2"}, titles)
	assert.Equal(t, 5, Count(sampleTree()))
}

func TestVisitOrder(t *testing.T) {
	var orders []int
	Visit(sampleTree(), func(_ types.OutlineNode, order int) {
		orders = append(orders, order)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, orders)
}

func TestRebase(t *testing.T) {
	tree := sampleTree()

	t.Run("keeps nesting inside the range", func(t *testing.T) {
		got := Rebase(tree, 0, 5)
		want := []types.OutlineNode{
			{Title: "1", Depth: 0, TargetPage: 0, Children: []types.OutlineNode{
				{Title: "1.1", Depth: 1, TargetPage: 1, Children: []types.OutlineNode{
					{Title: "1.1.1", Depth: 2, TargetPage: 2},
				}},
				{Title: "1.2", Depth: 1, TargetPage: 4},
			}},
		}
		assert.Equal(t, want, got)
	})

	t.Run("lifts descendants of out-of-range nodes", func(t *testing.T) {
		got := Rebase(tree, 1, 3)
		want := []types.OutlineNode{
			{Title: "1.1", Depth: 0, TargetPage: 0, Children: []types.OutlineNode{
				{Title: "1.1.1", Depth: 1, TargetPage: 1},
			}},
		}
		assert.Equal(t, want, got)
	})

	t.Run("does not modify the source tree", func(t *testing.T) {
		_ = Rebase(tree, 1, 3)
		assert.Equal(t, sampleTree(), tree)
	})

	t.Run("rebased targets fall inside the segment", func(t *testing.T) {
		start, end := 4, 7
		Visit(Rebase(tree, start, end), func(n types.OutlineNode, _ int) {
			assert.GreaterOrEqual(t, n.TargetPage, 0)
			assert.LessOrEqual(t, n.TargetPage, end-start)
		})
	})

	t.Run("empty when nothing is in range", func(t *testing.T) {
		assert.Empty(t, Rebase(tree, 7, 9))
	})
}
