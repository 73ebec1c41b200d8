// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-splitter/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index produced parts and search them by title",
	Long: `Catalog keeps a local SQLite index of the manifests written by split.
Use index to add output directories and search to find which file holds
a chapter or section.`,
}

var catalogIndexCmd = &cobra.Command{
	Use:   "index [dir...]",
	Short: "Index the manifests found under the given directories",
	Long: `Index walks each directory for manifest.yaml files written by split and
loads their parts into the catalog. Unchanged manifests are skipped on
subsequent runs.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	store, err := catalog.NewStore(catalogConfig(viper.GetViper()))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d manifest(s) failed indexing", summary.Failed)
	}
	return nil
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find produced parts whose title contains the query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := catalog.NewStore(catalogConfig(viper.GetViper()))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, results)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-9s  %-40s  %s\n", "Title", "Pages", "Source", "File")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range results {
		title := r.Label
		if len([]rune(title)) > 40 {
			title = string([]rune(title)[:37]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-9s  %-40s  %s\n",
			title, fmt.Sprintf("%d-%d", r.StartPage+1, r.EndPage+1), r.Source, r.Path)
	}
	return nil
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", ".chapter-splitter", "directory holding the catalog database")
	viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))

	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}
