// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-splitter/internal/classify"
	"github.com/pdiddy/chapter-splitter/internal/outline"
	"github.com/pdiddy/chapter-splitter/internal/pdfdoc"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <pdf>",
	Short: "Print a PDF's bookmarks with their classification",
	Long: `Outline prints every bookmark of the document in tree order with its
target page, the tag it receives (chapter, section or unclassified) and
the rule that decided the tag. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := splitConfig(viper.GetViper())
	if err != nil {
		return err
	}
	cls, err := classify.NewFromConfig(cfg.Classify)
	if err != nil {
		return err
	}

	doc, err := pdfdoc.Open(args[0])
	if err != nil {
		return err
	}
	defer doc.Close()

	tree, err := outline.Extract(doc)
	if err != nil {
		return err
	}
	if len(tree) == 0 {
		fmt.Printf("%s: no bookmarks (%d pages)\n", args[0], doc.PageCount())
		return nil
	}
	printOutline(os.Stdout, cls.Entries(tree))
	return nil
}

func printOutline(w io.Writer, entries []types.ClassifiedEntry) {
	fmt.Fprintf(w, "%-5s  %-12s  %-16s  %s\n", "Page", "Tag", "Rule", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, e := range entries {
		fmt.Fprintf(w, "%-5d  %-12s  %-16s  %s%s\n",
			e.TargetPage+1, e.Tag, e.Rule, strings.Repeat("  ", e.Depth), e.Title)
	}
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
