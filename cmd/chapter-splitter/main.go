// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chapter-splitter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the chapter-splitter CLI.
var rootCmd = &cobra.Command{
	Use:   "chapter-splitter",
	Short: "Split PDFs into chapters or sections along their bookmarks",
	Long: `chapter-splitter reads the outline (bookmark tree) of a PDF, classifies its
entries as chapters or sections from their titles and depth, and writes one
PDF per chapter or per section. Each output keeps the bookmarks that fall
inside its page range.

Use outline to inspect how a document's bookmarks are classified, split to
write the parts, and catalog to look up produced parts across many books.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chapter-splitter.yaml or ~/.config/chapter-splitter/chapter-splitter.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chapter-splitter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chapter-splitter"))
		}
	}

	viper.SetEnvPrefix("CHAPTER_SPLITTER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns the diagnostic logger. Diagnostics go to stderr so
// status lines on stdout stay clean.
func newLogger() *log.Logger {
	return &log.Logger{
		Level:  log.ParseLevel(viper.GetString("log.level")),
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
