// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutlineNode is one bookmark entry of a source document. Nodes form an
// owned tree: a parent holds its children by value and there are no
// back-pointers.
type OutlineNode struct {
	// Title is the display text of the bookmark.
	Title string `json:"title" yaml:"title"`

	// Depth is the nesting level in the source outline (0 for top level).
	Depth int `json:"depth" yaml:"depth"`

	// TargetPage is the zero-based page index the bookmark jumps to.
	TargetPage int `json:"target_page" yaml:"target_page"`

	// Children are the nested bookmarks in source order.
	Children []OutlineNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tag is the structural role assigned to an outline entry.
type Tag string

const (
	TagChapter      Tag = "chapter"
	TagSection      Tag = "section"
	TagUnclassified Tag = "unclassified"
)

// RuleDepth names the depth-based default when no title rule matched.
const RuleDepth = "depth"

// ClassifiedEntry is an outline node annotated with its structural tag.
type ClassifiedEntry struct {
	Title      string `json:"title" yaml:"title"`
	Depth      int    `json:"depth" yaml:"depth"`
	TargetPage int    `json:"target_page" yaml:"target_page"`

	// Order is the pre-order position of the node in the source tree. It is
	// the tie-break when two entries share a target page.
	Order int `json:"order" yaml:"order"`

	Tag Tag `json:"tag" yaml:"tag"`

	// Rule names the classification rule that produced Tag, or RuleDepth
	// when the depth default was used.
	Rule string `json:"rule" yaml:"rule"`
}

// Segment is one contiguous page range written as its own document.
type Segment struct {
	// Label is the human-readable title; empty for a leading segment.
	Label string `json:"label" yaml:"label"`

	// StartPage and EndPage are inclusive zero-based page indices.
	StartPage int `json:"start_page" yaml:"start_page"`
	EndPage   int `json:"end_page" yaml:"end_page"`

	// Source is the entry this segment was derived from. It is the zero
	// value for a leading segment.
	Source ClassifiedEntry `json:"source" yaml:"source"`

	// Outline holds the bookmarks inside the range, rebased so StartPage
	// becomes page 0.
	Outline []OutlineNode `json:"outline,omitempty" yaml:"outline,omitempty"`

	// Leading marks the unlabeled segment covering pages before the first
	// split entry.
	Leading bool `json:"leading,omitempty" yaml:"leading,omitempty"`

	// Degenerate marks a segment whose computed range was empty and was
	// collapsed to a single page.
	Degenerate bool `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`

	// ChapterOrdinal is the 1-based chapter position; SectionOrdinal the
	// 1-based position inside that chapter, or 0 for a chapter segment.
	ChapterOrdinal int `json:"chapter_ordinal" yaml:"chapter_ordinal"`
	SectionOrdinal int `json:"section_ordinal,omitempty" yaml:"section_ordinal,omitempty"`

	// FileName is assigned by the namer.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// PageCount returns the number of pages in the segment.
func (s Segment) PageCount() int {
	return s.EndPage - s.StartPage + 1
}
