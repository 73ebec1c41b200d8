// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split drives a split run: it reads the outline of a document,
// classifies its entries, resolves page ranges for the chosen level, names
// the segments and writes one PDF per segment together with a manifest.
package split

import (
	"errors"
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/pdiddy/chapter-splitter/internal/classify"
	"github.com/pdiddy/chapter-splitter/internal/naming"
	"github.com/pdiddy/chapter-splitter/internal/outline"
	"github.com/pdiddy/chapter-splitter/internal/segment"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// ErrNoOutline is returned when a document has no bookmarks, or none that
// can serve as a split boundary. Nothing is written in that case.
var ErrNoOutline = errors.New("document has no usable outline")

// Document is a source PDF the splitter can read and extract pages from.
// WriteRange writes pages [start, end] (zero-based, inclusive) to w with
// bms as the new outline, targets relative to start.
type Document interface {
	outline.Source
	WriteRange(w io.Writer, start, end int, bms []types.OutlineNode) error
}

// Plan is the computed layout of a split run before anything is written.
type Plan struct {
	TotalPages   int
	Entries      []types.ClassifiedEntry
	Segments     []types.Segment
	DroppedPages int
	Problems     []types.Problem
}

// Splitter plans and performs split runs with fixed settings.
type Splitter struct {
	cfg    types.SplitConfig
	cls    *classify.Classifier
	logger *log.Logger
}

// New creates a Splitter. A nil classifier uses the built-in rules; a nil
// logger discards diagnostics. Zero-valued settings take their defaults.
func New(cfg types.SplitConfig, cls *classify.Classifier, logger *log.Logger) *Splitter {
	def := types.DefaultSplitConfig()
	if !cfg.Level.Valid() {
		cfg.Level = def.Level
	}
	if cfg.Leading == "" {
		cfg.Leading = def.Leading
	}
	if cfg.Orphans == "" {
		cfg.Orphans = def.Orphans
	}
	if cfg.OutputSuffix == "" && cfg.OutDir == "" {
		cfg.OutputSuffix = def.OutputSuffix
	}
	if cfg.Naming.MaxLength <= 0 {
		cfg.Naming.MaxLength = def.Naming.MaxLength
	}
	if cfg.Naming.MinWidth <= 0 {
		cfg.Naming.MinWidth = def.Naming.MinWidth
	}
	if cls == nil {
		cls = classify.New()
	}
	if logger == nil {
		logger = &log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}}
	}
	return &Splitter{cfg: cfg, cls: cls, logger: logger}
}

// Config returns the effective settings.
func (s *Splitter) Config() types.SplitConfig { return s.cfg }

// Plan reads and classifies the outline of doc and computes the named
// segments. It returns an error wrapping ErrNoOutline when the outline is
// empty or yields no segment.
func (s *Splitter) Plan(doc Document) (*Plan, error) {
	tree, err := outline.Extract(doc)
	if err != nil {
		return nil, err
	}
	if len(tree) == 0 {
		return nil, ErrNoOutline
	}

	p := &Plan{TotalPages: doc.PageCount()}
	p.Entries = s.cls.Entries(tree)
	for _, e := range p.Entries {
		s.logger.Debug().Str("title", e.Title).Int("depth", e.Depth).Int("page", e.TargetPage).
			Str("tag", string(e.Tag)).Str("rule", e.Rule).Msg("classified")
		if !classify.Ambiguous(e) {
			continue
		}
		s.logger.Info().Str("title", e.Title).Int("depth", e.Depth).Str("tag", string(e.Tag)).
			Msg("no title rule matched; using depth default")
		p.Problems = append(p.Problems, types.Problem{
			Kind:    types.ProblemAmbiguity,
			Segment: e.Title,
			Message: fmt.Sprintf("tagged %s by depth %d", e.Tag, e.Depth),
		})
	}

	sel := segment.Select(p.Entries, s.cfg.Level, s.cfg.Orphans)
	p.Problems = append(p.Problems, sel.Problems...)
	if len(sel.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no %s entries", ErrNoOutline, s.cfg.Level)
	}

	res := segment.Resolve(sel.Candidates, p.TotalPages, s.cfg.Leading)
	for _, prob := range res.Problems {
		s.logger.Warn().Str("segment", prob.Segment).Msg(prob.Message)
	}
	p.Problems = append(p.Problems, res.Problems...)
	p.DroppedPages = res.DroppedPages

	namer := naming.NewNamer(s.cfg.Naming, s.cfg.Level, res.Segments)
	for i := range res.Segments {
		seg := &res.Segments[i]
		seg.Outline = outline.Rebase(tree, seg.StartPage, seg.EndPage)
		if len(seg.Outline) == 0 && seg.Label != "" {
			seg.Outline = []types.OutlineNode{{Title: seg.Label}}
		}
		seg.FileName = namer.Name(*seg, i)
	}
	p.Segments = res.Segments
	return p, nil
}
