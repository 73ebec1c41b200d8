// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a structural tag (chapter, section) to outline
// entries from their title text and depth.
//
// Tags come from two sources. A node at depth 0 defaults to chapter and a
// node at depth 1 to section. An ordered list of title rules overrides the
// default: the first rule that matches decides. Nodes at depth 2 or deeper
// are never split units and are always unclassified.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/pdiddy/chapter-splitter/internal/outline"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

// Rule recognizes one numbering convention. Match receives the normalized
// title and reports whether the rule applies.
type Rule struct {
	Name  string
	Tag   types.Tag
	Match func(title string) bool
}

// PatternRule builds a rule from a regular expression. Matching is
// case-insensitive.
func PatternRule(name string, tag types.Tag, pattern string) (Rule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling %s pattern %q: %w", name, pattern, err)
	}
	return Rule{Name: name, Tag: tag, Match: re.MatchString}, nil
}

func mustPattern(name string, tag types.Tag, pattern string) Rule {
	r, err := PatternRule(name, tag, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

const (
	// numeral matches Arabic digits or CJK numerals.
	numeral = `(?:[0-9]+|[零〇一二两三四五六七八九十百千]+)`
	// tail accepts what may follow a bare numeral: space, punctuation, or
	// the end of the title. Narrowing turns 、 into its half-width form ､.
	tail = `(?:[\s.:：、､)）\-]|$)`
)

// BuiltinRules returns the default rules in the order they are tried.
func BuiltinRules() []Rule {
	return []Rule{
		mustPattern("cjk-chapter", types.TagChapter, `^第\s*`+numeral+`\s*[章回篇]`),
		mustPattern("cjk-section", types.TagSection, `^第\s*`+numeral+`\s*[节節]`),
		mustPattern("latin-chapter", types.TagChapter, `^(?:chapter|chap\.|part)\s*(?:[0-9]+|[ivxlcdm]+)`+tail),
		mustPattern("latin-section", types.TagSection, `^(?:section|sect\.|§)\s*[0-9]+(?:\.[0-9]+)*`+tail),
		mustPattern("dotted-section", types.TagSection, `^[0-9]+\.[0-9]+`+tail),
		mustPattern("numeric-chapter", types.TagChapter, `^[0-9]+`+tail),
	}
}

// Classifier tags titles. It holds no state besides its rules, so the same
// title and depth always produce the same tag.
type Classifier struct {
	rules []Rule
}

// New returns a classifier that tries extra before the built-in rules.
func New(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(extra)+6)
	rules = append(rules, extra...)
	rules = append(rules, BuiltinRules()...)
	return &Classifier{rules: rules}
}

// NewFromConfig compiles configured chapter and section patterns and
// returns a classifier that tries them first.
func NewFromConfig(cfg types.ClassifyConfig) (*Classifier, error) {
	var extra []Rule
	for i, p := range cfg.ChapterPatterns {
		r, err := PatternRule(fmt.Sprintf("custom-chapter-%d", i+1), types.TagChapter, p)
		if err != nil {
			return nil, err
		}
		extra = append(extra, r)
	}
	for i, p := range cfg.SectionPatterns {
		r, err := PatternRule(fmt.Sprintf("custom-section-%d", i+1), types.TagSection, p)
		if err != nil {
			return nil, err
		}
		extra = append(extra, r)
	}
	return New(extra...), nil
}

// Classify returns the tag for a title at the given depth and the name of
// the rule that decided it (types.RuleDepth for the depth default).
func (c *Classifier) Classify(title string, depth int) (types.Tag, string) {
	if depth >= 2 {
		return types.TagUnclassified, types.RuleDepth
	}
	norm := Normalize(title)
	for _, r := range c.rules {
		if r.Match(norm) {
			return r.Tag, r.Name
		}
	}
	if depth == 0 {
		return types.TagChapter, types.RuleDepth
	}
	return types.TagSection, types.RuleDepth
}

// Entries classifies every node of tree in pre-order.
func (c *Classifier) Entries(tree []types.OutlineNode) []types.ClassifiedEntry {
	var entries []types.ClassifiedEntry
	outline.Visit(tree, func(n types.OutlineNode, order int) {
		tag, rule := c.Classify(n.Title, n.Depth)
		entries = append(entries, types.ClassifiedEntry{
			Title:      n.Title,
			Depth:      n.Depth,
			TargetPage: n.TargetPage,
			Order:      order,
			Tag:        tag,
			Rule:       rule,
		})
	})
	return entries
}

// Ambiguous reports whether an entry was tagged by the depth default
// because no title rule matched.
func Ambiguous(e types.ClassifiedEntry) bool {
	return e.Rule == types.RuleDepth && e.Tag != types.TagUnclassified
}

// openers are dropped from the start of a title before matching.
const openers = "[(（【「｢《〔\"'“‘"

// Normalize folds full-width forms to their narrow equivalents, trims
// surrounding whitespace and leading brackets or quotes.
func Normalize(title string) string {
	s := width.Narrow.String(title)
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, openers)
	return strings.TrimSpace(s)
}
