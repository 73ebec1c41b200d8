// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming derives safe, collision-free output file names for
// segments.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/chapter-splitter/pkg/types"
)

const (
	defaultMaxLength = 80
	defaultMinWidth  = 2
	untitled         = "untitled"
	ext              = ".pdf"

	// maxNameBytes is the file name limit of common file systems.
	maxNameBytes = 255

	// suffixReserve leaves room for a collision suffix up to "-999".
	suffixReserve = 4

	// maxPrefixBytes bounds the sanitized prefix.
	maxPrefixBytes = 64
)

// illegal lists characters that are not allowed in file names on at least
// one common file system.
const illegal = `/\<>:"|?*`

// reserved holds device names Windows refuses as file names.
var reserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Sanitize makes title usable as a file name component. Illegal and
// control characters become "_", runs of "_" and whitespace collapse, the
// result is trimmed of dots, spaces and underscores and truncated to
// maxLen runes. An empty result becomes "untitled".
func Sanitize(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultMaxLength
	}
	title = norm.NFC.String(title)

	var b strings.Builder
	var last rune
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			r = ' '
		case strings.ContainsRune(illegal, r) || unicode.IsControl(r):
			r = '_'
		}
		if (r == '_' || r == ' ') && r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}

	s := strings.Trim(b.String(), " ._")
	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), " ._")
	}
	if s == "" {
		return untitled
	}
	if reserved[strings.ToUpper(s)] {
		s += "_"
	}
	return s
}

// Namer assigns file names to the segments of one run. It remembers every
// name it handed out and disambiguates repeats.
type Namer struct {
	prefix string
	maxLen int
	width  int
	level  types.SplitLevel
	used   map[string]bool

	// leading is 1 when the run starts with an unlabeled leading segment,
	// so chapter ordinals keep matching chapter positions.
	leading int
}

// NewNamer prepares a namer for segs. The ordinal width is the width of the
// largest ordinal that will be printed, but at least cfg.MinWidth.
func NewNamer(cfg types.NamingConfig, level types.SplitLevel, segs []types.Segment) *Namer {
	minWidth := cfg.MinWidth
	if minWidth <= 0 {
		minWidth = defaultMinWidth
	}
	leading := 0
	if len(segs) > 0 && segs[0].Leading {
		leading = 1
	}
	largest := len(segs) - leading
	if level == types.LevelSection {
		largest = 0
		for _, s := range segs {
			largest = max(largest, s.ChapterOrdinal, s.SectionOrdinal)
		}
	}
	return &Namer{
		prefix:  strings.TrimSpace(cfg.Prefix),
		maxLen:  cfg.MaxLength,
		width:   max(minWidth, len(strconv.Itoa(largest))),
		level:   level,
		used:    make(map[string]bool),
		leading: leading,
	}
}

// Name returns the file name for the segment at position index (0-based)
// in the run.
//
// Chapter level: "<ordinal>-<title>.pdf" with ordinal = index+1, or 0 for
// the leading segment. Section level: "<chapter>-<section>-<title>.pdf", or
// "<chapter>-<title>.pdf" for a chapter that stands in for its missing
// sections. The title is shortened on a character boundary so the whole
// name, collision suffix included, fits in 255 bytes.
func (n *Namer) Name(seg types.Segment, index int) string {
	var ordinals []int
	switch {
	case n.level == types.LevelSection:
		ordinals = append(ordinals, seg.ChapterOrdinal)
		if seg.SectionOrdinal > 0 {
			ordinals = append(ordinals, seg.SectionOrdinal)
		}
	case seg.Leading:
		ordinals = append(ordinals, 0)
	default:
		ordinals = append(ordinals, index+1-n.leading)
	}

	var b strings.Builder
	if n.prefix != "" {
		b.WriteString(truncateBytes(Sanitize(n.prefix, n.maxLen), maxPrefixBytes))
		b.WriteByte('_')
	}
	for _, o := range ordinals {
		fmt.Fprintf(&b, "%0*d-", n.width, o)
	}

	budget := maxNameBytes - len(ext) - suffixReserve - b.Len()
	title := strings.TrimRight(truncateBytes(Sanitize(seg.Label, n.maxLen), budget), " ._")
	if title == "" {
		title = untitled
	}
	b.WriteString(title)

	return n.unique(b.String())
}

// truncateBytes shortens s to at most limit bytes without splitting a
// character.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// unique appends "-2", "-3", ... to base until the name has not been used.
// Comparison ignores case so names stay distinct on case-insensitive file
// systems.
func (n *Namer) unique(base string) string {
	name := base + ext
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
	n.used[strings.ToLower(name)] = true
	return name
}
