// Package textutil contains small helpers for laying out help text in a terminal.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines no wider than width, measured in runes. Words longer than width are
// placed on a line of their own rather than broken.
func Wrap(text string, width int) []string {
	var (
		lines   []string
		current strings.Builder
		length  int
	)
	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
			length = 0
		}
	}
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		switch {
		case length == 0 && n >= width:
			lines = append(lines, word)
		case length == 0:
			current.WriteString(word)
			length = n
		case length+n+1 > width:
			flush()
			if n >= width {
				lines = append(lines, word)
				continue
			}
			current.WriteString(word)
			length = n
		default:
			current.WriteByte(' ')
			current.WriteString(word)
			length += n + 1
		}
	}
	flush()
	return lines
}

// Columns renders name/description pairs as an aligned two-column list. Descriptions wrap at
// width and continuation lines are indented under the description column.
func Columns(rows [][2]string, width int) string {
	maxLen := 0
	for _, row := range rows {
		maxLen = max(maxLen, utf8.RuneCountInString(row[0]))
	}
	nameWidth := maxLen + 4
	var b strings.Builder
	for _, row := range rows {
		lines := Wrap(row[1], width-nameWidth)
		if len(lines) == 0 {
			b.WriteString("  " + row[0] + "\n")
			continue
		}
		padding := strings.Repeat(" ", nameWidth-utf8.RuneCountInString(row[0]))
		b.WriteString("  " + row[0] + padding + lines[0] + "\n")
		for _, line := range lines[1:] {
			b.WriteString(strings.Repeat(" ", nameWidth+2) + line + "\n")
		}
	}
	return b.String()
}
