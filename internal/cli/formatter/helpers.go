package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// TruncID shortens a uuid to its first block for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// HumanDate renders a production date as "Mon 2 Jan 2006".
func HumanDate(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// HumanMonth renders a month as "January 2006".
func HumanMonth(t time.Time) string {
	return t.Format("January 2006")
}

// Timestamp renders a submission time in local time, minute precision.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Signed renders n with an explicit sign, red when negative.
func Signed(n int) string {
	switch {
	case n < 0:
		return StyleRed.Render(itoa(n))
	case n > 0:
		return "+" + itoa(n)
	default:
		return "0"
	}
}
