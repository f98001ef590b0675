package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// TableOption adjusts how RenderTable lays out columns.
type TableOption func(*tableLayout)

type tableLayout struct {
	right  map[int]bool
	footer []string
}

// AlignRight right-aligns the given zero-based columns. Quantity columns use it.
func AlignRight(cols ...int) TableOption {
	return func(l *tableLayout) {
		for _, c := range cols {
			l.right[c] = true
		}
	}
}

// WithFooter adds a totals row under a second separator.
func WithFooter(cells ...string) TableOption {
	return func(l *tableLayout) { l.footer = cells }
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	layout := tableLayout{right: map[int]bool{}}
	for _, opt := range opts {
		opt(&layout)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	measure(layout.footer)

	var b strings.Builder
	styled := make([]string, cols)
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths, layout.right)
	writeSeparator(&b, widths)
	for _, row := range rows {
		writeRow(&b, row, widths, layout.right)
	}
	if layout.footer != nil {
		writeSeparator(&b, widths)
		bold := make([]string, len(layout.footer))
		for i, c := range layout.footer {
			bold[i] = Bold(c)
		}
		writeRow(&b, bold, widths, layout.right)
	}
	return b.String()
}

func writeRow(b *strings.Builder, row []string, widths []int, right map[int]bool) {
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		last := i == len(widths)-1
		switch {
		case right[i]:
			b.WriteString(strings.Repeat(" ", pad) + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + strings.Repeat(" ", pad))
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
