package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values. Negative values are
// supported: the whole series is shifted so the minimum maps to the lowest
// block, which keeps month-over-month net cash flow readable.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	span := high - low
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - low) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// HBarItem is one labeled row of a horizontal bar list.
type HBarItem struct {
	Label  string
	Value  float64
	Amount string // pre-formatted value shown after the bar
}

// HBarList renders labeled horizontal bars scaled against the largest
// absolute value. Negative bars render red, positive in the given color.
func HBarList(items []HBarItem, color lipgloss.Color, width int) string {
	if len(items) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	amountW := 0
	peak := 0.0
	for _, it := range items {
		if w := lipgloss.Width(it.Label); w > labelW {
			labelW = w
		}
		if w := lipgloss.Width(it.Amount); w > amountW {
			amountW = w
		}
		if a := math.Abs(it.Value); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		peak = 1
	}

	barW := width - labelW - amountW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}

		barColor := color
		if it.Value < 0 {
			barColor = t.Red
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		filled := int(math.Abs(it.Value) / peak * float64(barW))
		if filled < 1 && it.Value != 0 {
			filled = 1
		}
		if filled > barW {
			filled = barW
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, it.Label)))
		b.WriteString(spaceStyle.Render("  "))
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", barW-filled+2)))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, it.Amount)))
	}

	return b.String()
}

// FormatCompact abbreviates a float for chart labels (1.2k, 3.4M).
func FormatCompact(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%s%.1fB", neg, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s%.1fM", neg, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s%.1fk", neg, v/1e3)
	default:
		return fmt.Sprintf("%s%.0f", neg, v)
	}
}
