// Package render is the stateless mapping from navigation/tree/mark
// state to screen strings. It never mutates anything it reads.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/keys"
	"github.com/dua-go/dua/internal/markset"
	"github.com/dua-go/dua/internal/nav"
	"github.com/dua-go/dua/internal/tree"
)

// eighthBlocks are the seven partial horizontal block glyphs, ordered
// from least to most filled (1/8 through 7/8); a full cell uses '█'.
var eighthBlocks = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Bar renders p (clamped to [0,1], NaN treated as 0) as exactly
// length character cells: full '█' blocks, one partial-block glyph at
// the boundary, and spaces for the remainder.
func Bar(p float64, length int) string {
	if length <= 0 {
		return ""
	}
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	cells := p * float64(length)
	full := int(cells)
	if full > length {
		full = length
	}
	frac := cells - float64(full)

	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))

	remaining := length - full
	if remaining > 0 && frac > 0 {
		idx := int(frac * 8)
		if idx > 6 {
			idx = 6
		}
		b.WriteRune(eighthBlocks[idx])
		remaining--
	}
	b.WriteString(strings.Repeat(" ", remaining))
	return b.String()
}

// Gauge renders the same bar with one trailing cell, for a length+1
// total width (a readability gutter before an adjoining percentage).
func Gauge(p float64, length int) string {
	return Bar(p, length) + " "
}

// Percentage renders child/parent as a one-decimal percentage,
// treating a zero parent as 0.0%.
func Percentage(childSize, parentSize uint64) string {
	if parentSize == 0 {
		return "0.0%"
	}
	p := float64(childSize) / float64(parentSize) * 100
	return fmt.Sprintf("%.1f%%", p)
}

// Options configures rendering-pane visibility and dimensions.
type Options struct {
	Width, Height int
	Format        byteformat.Format
	ShowCount     bool
	ShowMTime     bool
	Message       string // transient footer message
	PendingExit   bool
}

// Header renders the title line.
func Header() string {
	return TitleStyle.Render("dua — interactive disk usage analyzer") + "  " + HelpStyle.Render("? for help")
}

// EntryRow renders one row of the Entries pane.
func EntryRow(t *tree.Tree, id tree.ID, parentSize uint64, selected bool, marked bool, opts Options) string {
	data, _ := t.Get(id)
	name := data.Name
	if data.IsDir {
		name += "/"
	}
	if marked {
		name = "✓ " + name
	}

	size := byteformat.Render(opts.Format, data.Size)
	pct := Percentage(data.Size, parentSize)
	var frac float64
	if parentSize > 0 {
		frac = float64(data.Size) / float64(parentSize)
	}
	bar := Gauge(frac, 10)

	row := fmt.Sprintf("%10s %6s %s", size, pct, bar)
	if opts.ShowCount {
		count := uint64(0)
		if data.EntryCount != nil {
			count = *data.EntryCount
		}
		row += fmt.Sprintf(" %6d", count)
	}
	if opts.ShowMTime {
		row += fmt.Sprintf(" %12d", data.MTime)
	}
	row += " " + name

	if selected {
		return SelectedRowStyle.Render(row)
	}
	return NormalRowStyle.Render(row)
}

// Entries renders the list of children under the view root.
func Entries(s *nav.State, marks *markset.Set, opts Options) string {
	parentData, _ := s.Tree.Get(s.ViewRoot)
	children := s.SortedChildren(s.ViewRoot)

	var b strings.Builder
	for _, id := range children {
		b.WriteString(EntryRow(s.Tree, id, parentData.Size, id == s.Selected, marks.Contains(id), opts))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Footer renders total bytes, entries traversed, and the transient
// message field.
func Footer(totalBytes uint64, entriesTraversed uint64, format byteformat.Format, message string) string {
	base := fmt.Sprintf("total %s across %d entries", byteformat.Render(format, totalBytes), entriesTraversed)
	if message != "" {
		base += "  " + message
	}
	return StatusBarStyle.Render(base)
}

// MarkPane renders the marked-entries list ordered by insertion, a
// total in the title, and a delete hint when focused.
func MarkPane(marks *markset.Set, format byteformat.Format, focused bool) string {
	var b strings.Builder
	title := fmt.Sprintf("marked (%d, %s)", marks.Len(), byteformat.Render(format, marks.TotalSize()))
	if focused {
		title += "  — Ctrl+Shift+R deletes without prompt"
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	for _, e := range marks.Entries() {
		b.WriteString(fmt.Sprintf("%10s %s\n", byteformat.Render(format, e.Size), e.Path))
	}
	return strings.TrimRight(b.String(), "\n")
}

// GlobPane renders the glob input line: the pattern with a cursor and
// a case-sensitivity indicator in the title.
func GlobPane(pattern string, cursor int, caseSensitive bool, width int) string {
	caseLabel := "case-insensitive"
	if caseSensitive {
		caseLabel = "case-sensitive"
	}
	title := fmt.Sprintf("search (%s)", caseLabel)

	line := pattern[:cursor] + "│" + pattern[cursor:]
	help := "search = enter | case = ^I | cancel = esc"

	if width > len(title)+len(help)+4 {
		pad := width - len(title) - len(help)
		return title + strings.Repeat(" ", pad) + help + "\n" + line
	}
	return title + "\n" + line
}

// HelpPane renders the scrollable keybinding glossary, starting at
// scroll.
func HelpPane(scroll int, height int) string {
	var lines []string
	for _, b := range keys.Glossary {
		lines = append(lines, fmt.Sprintf("%-14s %s", b.Chord, b.Help))
	}
	if scroll < 0 {
		scroll = 0
	}
	if scroll > len(lines) {
		scroll = len(lines)
	}
	end := scroll + height
	if end > len(lines) || height <= 0 {
		end = len(lines)
	}
	return strings.Join(lines[scroll:end], "\n")
}
