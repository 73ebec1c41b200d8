// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// envKeyReplacer maps config keys such as split.level to environment
// variables such as CHAPTER_SPLITTER_SPLIT_LEVEL.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	def := types.DefaultSplitConfig()
	viper.SetDefault("split.level", def.Level.String())
	viper.SetDefault("split.leading", string(def.Leading))
	viper.SetDefault("split.orphans", string(def.Orphans))
	viper.SetDefault("split.output_suffix", def.OutputSuffix)
	viper.SetDefault("naming.max_length", def.Naming.MaxLength)
	viper.SetDefault("naming.min_width", def.Naming.MinWidth)
	viper.SetDefault("catalog.dir", ".chapter-splitter")
	viper.SetDefault("catalog.max_results", 20)
	viper.SetDefault("log.level", "warn")
}

// parseLevel accepts "chapter", "section", "1" or "2".
func parseLevel(s string) (types.SplitLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "chapter", "chapters":
		return types.LevelChapter, nil
	case "2", "section", "sections":
		return types.LevelSection, nil
	default:
		return 0, fmt.Errorf("invalid split level %q: use chapter (1) or section (2)", s)
	}
}

// splitConfig assembles the split settings from flags, environment and
// config file, in viper's order of precedence.
func splitConfig(v *viper.Viper) (types.SplitConfig, error) {
	level, err := parseLevel(v.GetString("split.level"))
	if err != nil {
		return types.SplitConfig{}, err
	}

	cfg := types.SplitConfig{
		Level:        level,
		Leading:      types.LeadingPolicy(strings.ToLower(v.GetString("split.leading"))),
		Orphans:      types.OrphanPolicy(strings.ToLower(v.GetString("split.orphans"))),
		OutputSuffix: v.GetString("split.output_suffix"),
		OutDir:       v.GetString("split.out_dir"),
		DryRun:       v.GetBool("split.dry_run"),
		Naming: types.NamingConfig{
			Prefix:    v.GetString("naming.prefix"),
			MaxLength: v.GetInt("naming.max_length"),
			MinWidth:  v.GetInt("naming.min_width"),
		},
		Classify: types.ClassifyConfig{
			ChapterPatterns: patterns(v, "classify.chapter_patterns"),
			SectionPatterns: patterns(v, "classify.section_patterns"),
		},
	}

	switch cfg.Leading {
	case types.LeadingDrop, types.LeadingKeep:
	default:
		return types.SplitConfig{}, fmt.Errorf("invalid leading policy %q: use drop or keep", cfg.Leading)
	}
	switch cfg.Orphans {
	case types.OrphanPromote, types.OrphanReject:
	default:
		return types.SplitConfig{}, fmt.Errorf("invalid orphan policy %q: use promote or reject", cfg.Orphans)
	}
	return cfg, nil
}

func patterns(v *viper.Viper, key string) []string {
	ps := v.GetStringSlice(key)
	if len(ps) == 0 {
		return nil
	}
	return ps
}

func catalogConfig(v *viper.Viper) types.CatalogConfig {
	return types.CatalogConfig{
		Dir:        v.GetString("catalog.dir"),
		MaxResults: v.GetInt("catalog.max_results"),
	}
}
