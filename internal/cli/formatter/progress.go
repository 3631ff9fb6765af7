package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// ShareBar renders part as a share of whole, like ████░░░░  50%.
func ShareBar(part, whole float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if whole > 0 {
		pct = part / whole
	}
	pct = min(max(pct, 0), 1)

	filled := int(pct*float64(width) + 0.5)
	bar := StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, pct*100)
}
