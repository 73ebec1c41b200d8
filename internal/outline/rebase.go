// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import "github.com/pdiddy/chapter-splitter/pkg/types"

// Rebase returns the nodes of tree whose target lies in [start, end], with
// targets shifted so start becomes page 0 and depths renumbered from 0.
// A node outside the range is dropped and its in-range descendants take its
// place, so parent/child relations among kept nodes match the source tree.
// The input tree is not modified.
func Rebase(tree []types.OutlineNode, start, end int) []types.OutlineNode {
	return rebase(tree, start, end, 0)
}

func rebase(nodes []types.OutlineNode, start, end, depth int) []types.OutlineNode {
	var out []types.OutlineNode
	for _, n := range nodes {
		if n.TargetPage < start || n.TargetPage > end {
			out = append(out, rebase(n.Children, start, end, depth)...)
			continue
		}
		out = append(out, types.OutlineNode{
			Title:      n.Title,
			Depth:      depth,
			TargetPage: n.TargetPage - start,
			Children:   rebase(n.Children, start, end, depth+1),
		})
	}
	return out
}
