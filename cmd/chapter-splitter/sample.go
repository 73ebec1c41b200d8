// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chapter-splitter/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write a demo PDF with a mixed-style outline",
	Long: `Sample writes a small PDF whose bookmarks mix "Chapter n", "Part n",
dotted and bare-numeric titles with nested sections. Use it to try the
outline and split commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sample.pdf"
		if len(args) == 1 {
			path = args[0]
		}
		pages, tree := sample.Book()
		if err := sample.WriteFile(path, pages, tree); err != nil {
			return err
		}
		fmt.Printf("created: %s (%d pages)\n", path, pages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
