// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"fmt"
	"io"

	"github.com/pdiddy/chapter-splitter/internal/pdfdoc"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// BatchResult holds the outcome of splitting several documents.
type BatchResult struct {
	Split   int
	Partial int
	Failed  int

	Summaries []types.RunSummary
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Split + r.Partial + r.Failed
}

// HasFailures reports whether any document failed or lost a segment.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.Partial > 0
}

// SplitFile opens the PDF at path and splits it. The document stays open
// for the whole run.
func (s *Splitter) SplitFile(path string, w io.Writer) (types.RunSummary, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return types.RunSummary{Source: path, Level: s.cfg.Level}, err
	}
	defer doc.Close()
	return s.Split(doc, path, w)
}

// SplitBatch splits each path in turn, printing per-file status to w and
// returning a summary. A failure on one document does not stop the others.
func (s *Splitter) SplitBatch(paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		summary, err := s.SplitFile(path, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			s.logger.Error().Str("source", path).Err(err).Msg("split failed")
			result.Failed++
			continue
		}
		result.Summaries = append(result.Summaries, summary)
		if summary.HasFailures() {
			result.Partial++
		} else {
			result.Split++
		}
		fmt.Fprintf(w, "split:   %s (%d files, %d failed, %d warnings)\n",
			path, len(summary.Produced), summary.Failed(), summary.Warnings())
	}
	fmt.Fprintf(w, "\nBatch summary: %d split, %d partial, %d failed (total: %d)\n",
		result.Split, result.Partial, result.Failed, result.Total())
	return result
}
