package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Card renders a small labelled metric box.
func Card(label, value string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2).
		Render(StyleDim.Render(label) + "\n" + StyleBold.Render(value))
}

// Cards lays metric cards out side by side.
func Cards(cards ...string) string {
	spaced := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// Money renders a dollar amount with thousands separators, e.g. $30,000.00.
func Money(v float64) string {
	return "$" + grouped(decimal.NewFromFloat(v).StringFixed(2))
}

// Quantity renders a number with thousands separators and no trailing
// zeros, e.g. 1,200 or 12.5.
func Quantity(v float64) string {
	return grouped(decimal.NewFromFloat(v).String())
}

// Hours renders budgeted hours with one decimal place.
func Hours(v float64) string {
	return grouped(decimal.NewFromFloat(v).StringFixed(1))
}

// Text renders an empty cell as a dim placeholder.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

func grouped(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
