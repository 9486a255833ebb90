// Package ui renders colored terminal output for the mg CLI.
package ui

import (
	"fmt"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
	colorHigh   = 203 // red
	colorMedium = 221 // yellow
	colorOK     = 114 // green
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color. Used for node ids.
func RenderAccent(s string) string {
	return paint(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return paint(colorMuted, s)
}

// RenderSeverity colors s by issue severity.
func RenderSeverity(sev model.Severity, s string) string {
	switch sev {
	case model.SeverityHigh:
		return paint(colorHigh, s)
	case model.SeverityMedium:
		return paint(colorMedium, s)
	default:
		return paint(colorMuted, s)
	}
}

// RenderConfidence formats c with two decimals, green for certain links,
// yellow for strong ones, and gray for weak guesses.
func RenderConfidence(c float64) string {
	s := fmt.Sprintf("%.2f", c)
	switch {
	case c >= 0.9:
		return paint(colorOK, s)
	case c >= 0.8:
		return paint(colorMedium, s)
	default:
		return paint(colorMuted, s)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
