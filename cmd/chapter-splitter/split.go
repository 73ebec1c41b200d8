// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-splitter/internal/classify"
	"github.com/pdiddy/chapter-splitter/internal/split"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split <pdf> [pdf...]",
	Short: "Split PDFs into one file per chapter or section",
	Long: `Split reads each PDF's bookmarks, picks the chapter or section entries
and writes one PDF per entry to <name>_chapters/ next to the source.
Every output keeps the bookmarks inside its page range, renumbered to
its own pages. A manifest.yaml describing the run is written alongside.

Documents without bookmarks are reported and produce no output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := splitConfig(viper.GetViper())
	if err != nil {
		return err
	}
	cls, err := classify.NewFromConfig(cfg.Classify)
	if err != nil {
		return err
	}
	s := split.New(cfg, cls, newLogger())
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		summary, err := s.SplitFile(args[0], os.Stdout)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, summary)
		}
		printSummary(os.Stdout, summary, cfg.DryRun)
		if summary.HasFailures() {
			return fmt.Errorf("%d segment(s) failed", summary.Failed())
		}
		return nil
	}

	result := s.SplitBatch(args, os.Stdout)
	if jsonOutput {
		if err := writeJSON(os.Stdout, result.Summaries); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d document(s) did not split cleanly", result.Failed+result.Partial, result.Total())
	}
	return nil
}

func printSummary(w io.Writer, s types.RunSummary, dryRun bool) {
	verb := "wrote"
	if dryRun {
		verb = "would write"
	}
	fmt.Fprintf(w, "\n%s: %s %d file(s) to %s (%s level, %d pages",
		s.Source, verb, len(s.Produced), s.OutputDir, s.Level, s.TotalPages)
	if s.DroppedPages > 0 {
		fmt.Fprintf(w, ", %d leading page(s) dropped", s.DroppedPages)
	}
	fmt.Fprintf(w, ")\n")
	for _, p := range s.Problems {
		if p.Kind == types.ProblemAmbiguity {
			continue
		}
		fmt.Fprintf(w, "  %s: %s: %s\n", p.Kind, p.Segment, p.Message)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	f := splitCmd.Flags()
	f.String("level", "chapter", "split level: chapter (1) or section (2)")
	f.String("leading", "drop", "pages before the first entry: drop or keep")
	f.String("orphans", "promote", "sections without a chapter: promote or reject")
	f.String("suffix", "_chapters", "suffix appended to the source name for the output directory")
	f.String("out-dir", "", "parent directory for output (default: next to the source)")
	f.String("prefix", "", "prefix prepended to every output file name")
	f.Int("max-length", 80, "maximum title length in file names, in characters")
	f.Int("min-width", 2, "minimum width of zero-padded ordinals")
	f.Bool("dry-run", false, "print the planned files without writing them")
	f.Bool("json", false, "print the run summary as JSON")

	for key, flag := range map[string]string{
		"split.level":         "level",
		"split.leading":       "leading",
		"split.orphans":       "orphans",
		"split.output_suffix": "suffix",
		"split.out_dir":       "out-dir",
		"split.dry_run":       "dry-run",
		"naming.prefix":       "prefix",
		"naming.max_length":   "max-length",
		"naming.min_width":    "min-width",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(splitCmd)
}
