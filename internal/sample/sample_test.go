// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sample

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	pages, tree := Book()
	require.NoError(t, Write(&buf, pages, tree))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Outlines")
}

func TestWrite_RejectsInvalidOutlines(t *testing.T) {
	tests := []struct {
		name  string
		pages int
		tree  []types.OutlineNode
		msg   string
	}{
		{
			name:  "no pages",
			pages: 0,
			msg:   "page count",
		},
		{
			name:  "target past the end",
			pages: 2,
			tree:  []types.OutlineNode{{Title: "A", TargetPage: 2}},
			msg:   "outside",
		},
		{
			name:  "pre-order goes backwards",
			pages: 5,
			tree: []types.OutlineNode{
				{Title: "A", TargetPage: 3},
				{Title: "B", TargetPage: 1},
			},
			msg: "before preceding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Write(&bytes.Buffer{}, tt.pages, tt.tree)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	require.NoError(t, WriteFile(path, 3, []types.OutlineNode{{Title: "Only", TargetPage: 0}}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestBookDepths(t *testing.T) {
	pages, tree := Book()
	assert.Equal(t, 17, pages)
	assert.Equal(t, 0, tree[1].Depth)
	assert.Equal(t, 1, tree[1].Children[0].Depth)
	assert.Equal(t, 2, tree[1].Children[0].Children[0].Depth)
}
