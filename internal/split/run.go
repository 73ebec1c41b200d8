// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chapter-splitter/internal/outline"
	"github.com/pdiddy/chapter-splitter/internal/pdfdoc"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// ManifestName is the file written to every output directory.
const ManifestName = "manifest.yaml"

// OutputDir returns the directory that receives the segments of source:
// "<stem><suffix>" next to the source, or under cfg.OutDir when set.
func OutputDir(source string, cfg types.SplitConfig) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	parent := filepath.Dir(source)
	if cfg.OutDir != "" {
		parent = cfg.OutDir
	}
	return filepath.Join(parent, stem+cfg.OutputSuffix)
}

// Split plans doc and writes each segment to the output directory of
// source, printing one status line per segment to w. A structural problem
// is returned as an error and nothing is written. Per-segment failures are
// recorded in the summary and the remaining segments are still written.
func (s *Splitter) Split(doc Document, source string, w io.Writer) (types.RunSummary, error) {
	summary := types.RunSummary{
		Source:     source,
		Level:      s.cfg.Level,
		TotalPages: doc.PageCount(),
	}

	plan, err := s.Plan(doc)
	if err != nil {
		return summary, fmt.Errorf("planning %s: %w", source, err)
	}
	summary.DroppedPages = plan.DroppedPages
	summary.Problems = append(summary.Problems, plan.Problems...)

	dir := OutputDir(source, s.cfg)
	summary.OutputDir = dir

	if s.cfg.DryRun {
		for _, seg := range plan.Segments {
			fmt.Fprintf(w, "planned: %s (pages %d-%d)\n", seg.FileName, seg.StartPage+1, seg.EndPage+1)
		}
		return summary, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", dir, err)
		summary.Problems = append(summary.Problems, types.Problem{
			Kind:    types.ProblemIO,
			Message: fmt.Sprintf("creating output directory: %v", err),
		})
		return summary, nil
	}

	for _, seg := range plan.Segments {
		prob := s.writeSegment(doc, dir, seg)
		if prob != nil {
			summary.Problems = append(summary.Problems, *prob)
			if prob.Fatal() {
				fmt.Fprintf(w, "failed:  %s (%s)\n", seg.FileName, prob.Message)
				s.logger.Error().Str("file", seg.FileName).Str("kind", string(prob.Kind)).Msg(prob.Message)
				continue
			}
			fmt.Fprintf(w, "warning: %s (%s)\n", seg.FileName, prob.Message)
		}
		if seg.Degenerate {
			fmt.Fprintf(w, "warning: %s (collapsed to page %d)\n", seg.FileName, seg.StartPage+1)
		}
		fmt.Fprintf(w, "created: %s (pages %d-%d)\n", seg.FileName, seg.StartPage+1, seg.EndPage+1)
		summary.Produced = append(summary.Produced, types.ProducedFile{
			FileName:       seg.FileName,
			Label:          seg.Label,
			StartPage:      seg.StartPage,
			EndPage:        seg.EndPage,
			ChapterOrdinal: seg.ChapterOrdinal,
			SectionOrdinal: seg.SectionOrdinal,
			Bookmarks:      bookmarkCount(seg, prob),
		})
	}

	if err := WriteManifest(filepath.Join(dir, ManifestName), summary); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", ManifestName, err)
		summary.Problems = append(summary.Problems, types.Problem{
			Kind:    types.ProblemIO,
			Segment: ManifestName,
			Message: err.Error(),
		})
	}
	return summary, nil
}

func bookmarkCount(seg types.Segment, prob *types.Problem) int {
	if prob != nil && prob.Kind == types.ProblemOutlineDropped {
		return 0
	}
	return outline.Count(seg.Outline)
}

// writeSegment extracts seg into dir through a temporary file so a failed
// write never leaves a partial PDF under the final name.
func (s *Splitter) writeSegment(doc Document, dir string, seg types.Segment) *types.Problem {
	fail := func(kind types.ProblemKind, format string, args ...any) *types.Problem {
		return &types.Problem{Kind: kind, Segment: seg.Label, Message: fmt.Sprintf(format, args...)}
	}

	tmpFile, err := os.CreateTemp(dir, ".segment-*.tmp")
	if err != nil {
		return fail(types.ProblemIO, "creating temp file: %v", err)
	}
	tmpPath := tmpFile.Name()

	var warn *types.Problem
	writeErr := doc.WriteRange(tmpFile, seg.StartPage, seg.EndPage, seg.Outline)
	if errors.Is(writeErr, pdfdoc.ErrOutlineRejected) {
		s.logger.Warn().Str("file", seg.FileName).Err(writeErr).Msg("bookmarks dropped")
		warn = fail(types.ProblemOutlineDropped, "written without bookmarks: %v", writeErr)
		writeErr = nil
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fail(types.ProblemExtraction, "extracting pages %d-%d: %v", seg.StartPage+1, seg.EndPage+1, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fail(types.ProblemIO, "closing temp file: %v", closeErr)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, seg.FileName)); err != nil {
		os.Remove(tmpPath)
		return fail(types.ProblemIO, "renaming temp file: %v", err)
	}
	return warn
}

// WriteManifest writes summary as YAML to path.
func WriteManifest(path string, summary types.RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*types.RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary types.RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &summary, nil
}
