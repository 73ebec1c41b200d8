// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc adapts pdfcpu to the document interfaces used by the
// splitter: page count, outline items, and page-range extraction with a
// replacement outline.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/chapter-splitter/internal/outline"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// ErrOutlineRejected reports that the extracted pages were written but the
// replacement outline could not be attached.
var ErrOutlineRejected = errors.New("outline rejected")

// Document is a source PDF parsed once and held in memory. It is
// read-only: each extraction copies pages into a new context, so the
// source never changes.
type Document struct {
	name  string
	ctx   *model.Context
	pages int
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Load(path, data)
}

// Load parses PDF bytes already in memory. name is used in error messages.
func Load(name string, data []byte) (*Document, error) {
	conf := newConf()
	conf.Cmd = model.SPLIT
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &Document{name: name, ctx: ctx, pages: ctx.PageCount}, nil
}

// newConf returns a fresh configuration per call because pdfcpu records the
// running command in it.
func newConf() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// Name returns the name the document was opened with.
func (d *Document) Name() string { return d.name }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.pages }

// OutlineItems returns the bookmark tree. A document without an outline
// returns no items and no error.
func (d *Document) OutlineItems() ([]outline.Item, error) {
	if d.ctx == nil {
		return nil, errors.New("document is closed")
	}
	bms, err := pdfcpu.Bookmarks(d.ctx)
	if err != nil {
		if errors.Is(err, api.ErrNoOutlines) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bookmarks of %s: %w", d.name, err)
	}
	return toItems(bms), nil
}

func toItems(bms []pdfcpu.Bookmark) []outline.Item {
	if len(bms) == 0 {
		return nil
	}
	items := make([]outline.Item, len(bms))
	for i, bm := range bms {
		items[i] = outline.Item{
			Title: bm.Title,
			Page:  bm.PageFrom,
			Kids:  toItems(bm.Kids),
		}
	}
	return items
}

// WriteRange writes pages [start, end] (zero-based, inclusive) as a new PDF
// to w, replacing its outline with bms. Targets in bms are relative to start.
// If pdfcpu refuses the outline, the pages are still written and the
// returned error wraps ErrOutlineRejected.
func (d *Document) WriteRange(w io.Writer, start, end int, bms []types.OutlineNode) error {
	if d.ctx == nil {
		return errors.New("document is closed")
	}
	if start < 0 || end < start || end >= d.pages {
		return fmt.Errorf("page range %d-%d outside document of %d pages", start+1, end+1, d.pages)
	}

	sel := fmt.Sprintf("%d-%d", start+1, end+1)
	if start == end {
		sel = fmt.Sprintf("%d", start+1)
	}

	part, err := pdfcpu.ExtractPages(d.ctx, api.PagesForPageRange(start+1, end+1), false)
	if err != nil {
		return fmt.Errorf("extracting pages %s: %w", sel, err)
	}
	var trimmed bytes.Buffer
	if err := api.WriteContext(part, &trimmed); err != nil {
		return fmt.Errorf("writing pages %s: %w", sel, err)
	}

	if len(bms) == 0 {
		_, err = w.Write(trimmed.Bytes())
		return err
	}
	var marked bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(trimmed.Bytes()), &marked, toBookmarks(bms), true, newConf()); err != nil {
		if _, werr := w.Write(trimmed.Bytes()); werr != nil {
			return werr
		}
		return fmt.Errorf("%w: pages %s: %v", ErrOutlineRejected, sel, err)
	}
	_, err = w.Write(marked.Bytes())
	return err
}

// toBookmarks converts nodes, ordering each sibling list by target page.
// pdfcpu rejects an outline whose siblings go backwards, which a rebased
// tree can produce when children are lifted past their parent's siblings.
func toBookmarks(nodes []types.OutlineNode) []pdfcpu.Bookmark {
	if len(nodes) == 0 {
		return nil
	}
	sorted := slices.Clone(nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TargetPage < sorted[j].TargetPage
	})
	bms := make([]pdfcpu.Bookmark, len(sorted))
	for i, n := range sorted {
		bms[i] = pdfcpu.Bookmark{
			Title:    n.Title,
			PageFrom: n.TargetPage + 1,
			Kids:     toBookmarks(n.Children),
		}
	}
	return bms
}

// Close releases the parsed document.
func (d *Document) Close() error {
	d.ctx = nil
	return nil
}
