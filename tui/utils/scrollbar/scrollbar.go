// Package scrollbar renders a one-column scrollbar for viewport content.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/easeltools/easel/tui/theme"
)

// Generate returns one scrollbar character per line for the given height.
func Generate(vp *viewport.Model, height int) []string {
	if height <= 0 {
		return []string{}
	}

	bar := make([]string, height)

	totalLines := vp.TotalLineCount()
	if totalLines == 0 {
		for i := range bar {
			bar[i] = theme.DefaultTheme.Muted.Render(" ")
		}
		return bar
	}

	// Content that fits entirely is all thumb.
	if totalLines <= vp.Height {
		for i := range bar {
			bar[i] = theme.DefaultTheme.Muted.Render("█")
		}
		return bar
	}

	thumbSize := (height * vp.Height) / totalLines
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollPercent := vp.ScrollPercent()
	if scrollPercent < 0 {
		scrollPercent = 0
	}
	if scrollPercent > 1 {
		scrollPercent = 1
	}

	maxThumbStart := height - thumbSize
	thumbStart := int(float64(maxThumbStart)*scrollPercent + 0.5)
	if thumbStart < 0 {
		thumbStart = 0
	}
	if thumbStart > maxThumbStart {
		thumbStart = maxThumbStart
	}

	for i := range bar {
		if i >= thumbStart && i < thumbStart+thumbSize {
			bar[i] = theme.DefaultTheme.Muted.Render("█")
		} else {
			bar[i] = theme.DefaultTheme.Muted.Render("░")
		}
	}

	return bar
}

// Overlay appends the scrollbar to the right edge of the viewport's visible
// content.
func Overlay(vp *viewport.Model) string {
	content := vp.View()
	lines := strings.Split(content, "\n")
	bar := Generate(vp, len(lines))

	var result []string
	for i, line := range lines {
		ch := " "
		if i < len(bar) {
			ch = bar[i]
		}
		result = append(result, line+ch)
	}

	return strings.Join(result, "\n")
}
