// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sample generates PDF documents with a given bookmark tree. It
// backs the sample command and provides real fixtures for tests.
package sample

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// Write renders a document of the given page count whose outline is tree.
// Node depth is taken from the tree structure; TargetPage is zero-based.
// Titles are written with the core fonts, so they should be Latin-1.
func Write(w io.Writer, pages int, tree []types.OutlineNode) error {
	if pages <= 0 {
		return fmt.Errorf("page count must be positive, got %d", pages)
	}

	type mark struct {
		title string
		level int
	}
	byPage := make(map[int][]mark)
	last := 0
	var walk func(nodes []types.OutlineNode, level int) error
	walk = func(nodes []types.OutlineNode, level int) error {
		for _, n := range nodes {
			if n.TargetPage < 0 || n.TargetPage >= pages {
				return fmt.Errorf("bookmark %q targets page %d outside [0,%d]", n.Title, n.TargetPage, pages-1)
			}
			// Bookmarks are placed while rendering pages in order, so
			// the pre-order walk must not go back in the page sequence.
			if n.TargetPage < last {
				return fmt.Errorf("bookmark %q targets page %d before preceding bookmark page %d", n.Title, n.TargetPage, last)
			}
			last = n.TargetPage
			byPage[n.TargetPage] = append(byPage[n.TargetPage], mark{n.Title, level})
			if err := walk(n.Children, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree, 0); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("chapter-splitter sample", false)
	for p := 0; p < pages; p++ {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		for _, m := range byPage[p] {
			pdf.Bookmark(m.title, m.level, -1)
			pdf.Cell(0, 10, m.title)
			pdf.Ln(12)
		}
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 10, fmt.Sprintf("Page %d of %d", p+1, pages))
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering sample PDF: %w", err)
	}
	return nil
}

// WriteFile renders the document to path.
func WriteFile(path string, pages int, tree []types.OutlineNode) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, pages, tree); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Book returns the demo document: a preface, chapters numbered in several
// styles, sections with nested sub-sections, and an appendix.
func Book() (pages int, tree []types.OutlineNode) {
	tree = []types.OutlineNode{
		{Title: "Preface", TargetPage: 1},
		{Title: "Chapter 1 Getting Started", TargetPage: 3, Children: []types.OutlineNode{
			{Title: "1.1 Installation", TargetPage: 4, Children: []types.OutlineNode{
				{Title: "Requirements", TargetPage: 4},
				{Title: "Building from source", TargetPage: 5},
			}},
			{Title: "1.2 First run", TargetPage: 6},
		}},
		{Title: "Part II Reference", TargetPage: 8, Children: []types.OutlineNode{
			{Title: "Section 2.1 Commands", TargetPage: 9},
			{Title: "Section 2.2 Configuration", TargetPage: 11},
		}},
		{Title: "3 Troubleshooting", TargetPage: 13},
		{Title: "Appendix", TargetPage: 15},
	}
	return 17, depths(tree, 0)
}

func depths(nodes []types.OutlineNode, depth int) []types.OutlineNode {
	for i := range nodes {
		nodes[i].Depth = depth
		nodes[i].Children = depths(nodes[i].Children, depth+1)
	}
	return nodes
}
