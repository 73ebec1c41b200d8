// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProblemKind classifies a condition reported by a split run.
type ProblemKind string

const (
	// ProblemStructural means the source has no usable outline or cannot
	// be read. No output is produced.
	ProblemStructural ProblemKind = "structural"

	// ProblemAmbiguity means no title rule matched and the depth default
	// was used. Informational only.
	ProblemAmbiguity ProblemKind = "classification_ambiguity"

	// ProblemDegenerate means a zero-length range was collapsed to one page.
	ProblemDegenerate ProblemKind = "range_degenerate"

	// ProblemExtraction means the page range of a segment could not be
	// materialized. The segment is skipped.
	ProblemExtraction ProblemKind = "extraction_failure"

	// ProblemIO means the output directory or file could not be written.
	ProblemIO ProblemKind = "io_failure"

	// ProblemOrphan means a section entry had no enclosing chapter and was
	// rejected by the orphan policy.
	ProblemOrphan ProblemKind = "orphan_section"

	// ProblemOutlineDropped means a segment was written without its
	// bookmarks because the PDF backend refused them.
	ProblemOutlineDropped ProblemKind = "outline_dropped"
)

// Problem is one reported condition. Segment is the label of the affected
// segment or entry, if any.
type Problem struct {
	Kind    ProblemKind `json:"kind" yaml:"kind"`
	Segment string      `json:"segment,omitempty" yaml:"segment,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

// Fatal reports whether the problem cost a segment its output.
func (p Problem) Fatal() bool {
	return p.Kind == ProblemExtraction || p.Kind == ProblemIO
}

// ProducedFile records a written segment.
type ProducedFile struct {
	FileName       string `json:"file_name" yaml:"file_name"`
	Label          string `json:"label" yaml:"label"`
	StartPage      int    `json:"start_page" yaml:"start_page"`
	EndPage        int    `json:"end_page" yaml:"end_page"`
	ChapterOrdinal int    `json:"chapter_ordinal" yaml:"chapter_ordinal"`
	SectionOrdinal int    `json:"section_ordinal,omitempty" yaml:"section_ordinal,omitempty"`
	Bookmarks      int    `json:"bookmarks" yaml:"bookmarks"`
}

// RunSummary is the outcome of splitting one document.
type RunSummary struct {
	Source     string     `json:"source" yaml:"source"`
	OutputDir  string     `json:"output_dir" yaml:"output_dir"`
	Level      SplitLevel `json:"level" yaml:"level"`
	TotalPages int        `json:"total_pages" yaml:"total_pages"`

	// DroppedPages counts leading pages not covered by any segment.
	DroppedPages int `json:"dropped_pages" yaml:"dropped_pages"`

	Produced []ProducedFile `json:"produced" yaml:"produced"`
	Problems []Problem      `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// Failed returns the number of segments that could not be produced.
func (s RunSummary) Failed() int {
	n := 0
	for _, p := range s.Problems {
		if p.Fatal() {
			n++
		}
	}
	return n
}

// Warnings returns the number of non-fatal, non-informational problems.
func (s RunSummary) Warnings() int {
	n := 0
	for _, p := range s.Problems {
		switch p.Kind {
		case ProblemDegenerate, ProblemOrphan, ProblemOutlineDropped:
			n++
		}
	}
	return n
}

// HasFailures reports whether any segment failed.
func (s RunSummary) HasFailures() bool {
	return s.Failed() > 0
}
