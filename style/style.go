// Package style provides small rendering functions built on lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmp-client/dmpcfg/color"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a function that renders a string in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded heading block.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle renders a padded heading block in the failure color.
var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Failure).Padding(0, 1).Render(s)
}

// Tag returns a function that renders a string as a colored, padded tag.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// Swatch renders a two cell block filled with the hex color.
func Swatch(hex string) string {
	return Colored("", color.New(hex)).Render("  ")
}
