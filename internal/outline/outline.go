// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline reads a document's bookmark tree into owned OutlineNode
// values and provides the traversals the splitter needs: pre-order
// flattening and range rebasing.
package outline

import (
	"fmt"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// Item is a raw bookmark as a PDF backend exposes it. Page is 1-based as in
// the document's page tree; a value below 1 means the destination could not
// be resolved.
type Item struct {
	Title string
	Page  int
	Kids  []Item
}

// Source is a document that exposes a page count and a bookmark tree.
type Source interface {
	PageCount() int
	OutlineItems() ([]Item, error)
}

// Extract reads the outline of src. Nesting and order are preserved. Target
// pages are converted to zero-based indices and clamped into
// [parent target, PageCount()-1]; a document without bookmarks yields an
// empty tree and no error.
func Extract(src Source) ([]types.OutlineNode, error) {
	items, err := src.OutlineItems()
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	total := src.PageCount()
	if len(items) == 0 || total <= 0 {
		return nil, nil
	}
	return convert(items, 0, 0, total), nil
}

func convert(items []Item, depth, floor, total int) []types.OutlineNode {
	nodes := make([]types.OutlineNode, 0, len(items))
	for _, it := range items {
		target := clamp(it.Page-1, floor, total-1)
		n := types.OutlineNode{
			Title:      it.Title,
			Depth:      depth,
			TargetPage: target,
		}
		if len(it.Kids) > 0 {
			n.Children = convert(it.Kids, depth+1, target, total)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Visit calls fn for every node in pre-order. order is the node's pre-order
// position starting at 0.
func Visit(tree []types.OutlineNode, fn func(n types.OutlineNode, order int)) {
	order := 0
	var walk func([]types.OutlineNode)
	walk = func(nodes []types.OutlineNode) {
		for _, n := range nodes {
			fn(n, order)
			order++
			walk(n.Children)
		}
	}
	walk(tree)
}

// Flatten returns all nodes in pre-order with their children stripped.
func Flatten(tree []types.OutlineNode) []types.OutlineNode {
	var flat []types.OutlineNode
	Visit(tree, func(n types.OutlineNode, _ int) {
		n.Children = nil
		flat = append(flat, n)
	})
	return flat
}

// Count returns the number of nodes in the tree.
func Count(tree []types.OutlineNode) int {
	n := 0
	Visit(tree, func(types.OutlineNode, int) { n++ })
	return n
}
