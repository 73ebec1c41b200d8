// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// SplitLevel selects which classified entries become segment boundaries.
type SplitLevel int

const (
	LevelChapter SplitLevel = 1
	LevelSection SplitLevel = 2
)

// String returns the level name used in manifests and log output.
func (l SplitLevel) String() string {
	switch l {
	case LevelChapter:
		return "chapter"
	case LevelSection:
		return "section"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether l is a supported split level.
func (l SplitLevel) Valid() bool {
	return l == LevelChapter || l == LevelSection
}

// LeadingPolicy controls pages that precede the first split entry.
type LeadingPolicy string

const (
	LeadingDrop LeadingPolicy = "drop"
	LeadingKeep LeadingPolicy = "keep"
)

// OrphanPolicy controls section entries that have no enclosing chapter.
type OrphanPolicy string

const (
	OrphanPromote OrphanPolicy = "promote"
	OrphanReject  OrphanPolicy = "reject"
)

// SplitConfig holds settings for a split run.
type SplitConfig struct {
	// Level is the split level: 1 for chapters, 2 for sections.
	Level SplitLevel `json:"level" yaml:"level"`

	// Leading decides whether pages before the first entry are dropped
	// (default) or written as an unlabeled leading segment.
	Leading LeadingPolicy `json:"leading" yaml:"leading"`

	// Orphans decides whether a section with no enclosing chapter is
	// promoted to a chapter (default) or rejected.
	Orphans OrphanPolicy `json:"orphans" yaml:"orphans"`

	// OutputSuffix is appended to the source file stem to name the output
	// directory (default "_chapters").
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`

	// OutDir, when set, replaces the source file's directory as the parent
	// of the output directory.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`

	// DryRun plans segments without writing any file.
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`

	Naming   NamingConfig   `json:"naming" yaml:"naming"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
}

// NamingConfig holds settings for output file names.
type NamingConfig struct {
	// Prefix is prepended to every file name as "<prefix>_".
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// MaxLength bounds the sanitized title in runes (default 80).
	MaxLength int `json:"max_length" yaml:"max_length"`

	// MinWidth is the minimum ordinal width (default 2).
	MinWidth int `json:"min_width" yaml:"min_width"`
}

// ClassifyConfig holds additional title patterns. They are regular
// expressions tried before the built-in rules.
type ClassifyConfig struct {
	ChapterPatterns []string `json:"chapter_patterns,omitempty" yaml:"chapter_patterns,omitempty"`
	SectionPatterns []string `json:"section_patterns,omitempty" yaml:"section_patterns,omitempty"`
}

// CatalogConfig holds settings for the segment catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default search limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DefaultSplitConfig returns the settings used when nothing is configured.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		Level:        LevelChapter,
		Leading:      LeadingDrop,
		Orphans:      OrphanPromote,
		OutputSuffix: "_chapters",
		Naming: NamingConfig{
			MaxLength: 80,
			MinWidth:  2,
		},
	}
}
