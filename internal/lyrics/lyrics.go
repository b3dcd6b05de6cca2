// Package lyrics converts raw slide text into VerseVIEW's lyric format.
//
// Normalized lyrics are a single string: the surviving lines of one slide are
// joined by [LineDelimiter] and slides are joined by [SlideDelimiter]. Empty
// slides are kept as empty blocks so the slide count survives normalization.
package lyrics

import (
	"strings"
	"unicode/utf8"
)

const (
	LineDelimiter  = "<BR>"
	SlideDelimiter = "<slide>"
)

// Slide is the ordered text of the shapes on one slide, one raw string per shape.
type Slide []string

// sentinels removes delimiter tokens from line content.
var sentinels = strings.NewReplacer(LineDelimiter, "", SlideDelimiter, "")

// stripDelimiters removes delimiter tokens until none are left, so nested
// input such as "<<BR>BR>" cannot rebuild one.
func stripDelimiters(s string) string {
	for {
		n := sentinels.Replace(s)
		if n == s {
			return s
		}
		s = n
	}
}

// Normalize joins the trimmed, non-empty lines of every slide.
func Normalize(slides []Slide) string {
	blocks := make([]string, len(slides))
	for i, slide := range slides {
		blocks[i] = strings.Join(Lines(slide), LineDelimiter)
	}
	return strings.Join(blocks, SlideDelimiter)
}

// Lines returns the trimmed, non-empty lines of a slide's raw strings in order.
func Lines(slide Slide) []string {
	var lines []string
	for _, raw := range slide {
		for _, line := range SplitLines(raw) {
			line = strings.TrimSpace(stripDelimiters(line))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// SplitLines splits s at every line boundary: \n, \r, \r\n, vertical tab,
// form feed, the ASCII file/group/record separators, NEL and the Unicode
// line and paragraph separators.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := rune(s[i]), 1
		if r >= 0x80 {
			r, size = utf8.DecodeRuneInString(s[i:])
		}
		if isLineBreak(r) {
			lines = append(lines, s[start:i])
			i += size
			if r == '\r' && i < len(s) && s[i] == '\n' {
				i++
			}
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Split recovers the slide and line structure of normalized lyrics.
func Split(l string) [][]string {
	blocks := strings.Split(l, SlideDelimiter)
	slides := make([][]string, len(blocks))
	for i, block := range blocks {
		if block == "" {
			slides[i] = []string{}
			continue
		}
		slides[i] = strings.Split(block, LineDelimiter)
	}
	return slides
}

// SlideCount returns the number of slides encoded in normalized lyrics.
func SlideCount(l string) int {
	return strings.Count(l, SlideDelimiter) + 1
}

// IsEmpty reports whether normalized lyrics hold nothing: no slides, or a
// single slide without lines. Several empty slides still count as lyrics.
func IsEmpty(l string) bool {
	return l == ""
}

// Display renders lyrics for preview: slides become blank-line separated
// sections divided by a rule, lines become line breaks.
func Display(l string) string {
	return displayReplacer.Replace(l)
}

var displayReplacer = strings.NewReplacer(SlideDelimiter, "\n\n---\n\n", LineDelimiter, "\n")

// Markdown renders lyrics as a markdown document titled with the song name.
// Lines end with two spaces so markdown renderers keep the line breaks.
func Markdown(title, l string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, slide := range Split(l) {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		for _, line := range slide {
			b.WriteString(line)
			b.WriteString("  \n")
		}
	}
	return b.String()
}
