package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders an achievement bar like [████░░░░]  45%.
// The bar fills to 100% and is colored with PercentStyle; the label keeps
// the real value, which may exceed 100.
func RenderProgress(pct int, width int) string {
	if width < 2 {
		width = 2
	}
	fill := pct
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}

	filled := fill * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", PercentStyle(pct).Render(bar), pct)
}
