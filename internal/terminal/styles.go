package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spacesedan/emotion-reflection/internal/reflection"
)

var emotionColors = map[reflection.StyleKey]lipgloss.AdaptiveColor{
	"emotion-happy":     {Light: "#B8860B", Dark: "#FFD75F"},
	"emotion-sad":       {Light: "#1F4E9E", Dark: "#5F87FF"},
	"emotion-anxious":   {Light: "#C05800", Dark: "#FFAF5F"},
	"emotion-excited":   {Light: "#B0166E", Dark: "#FF5FD7"},
	"emotion-angry":     {Light: "#D00000", Dark: "#FF5555"},
	"emotion-calm":      {Light: "#008000", Dark: "#5FD787"},
	"emotion-confused":  {Light: "#6A3FA0", Dark: "#AF87FF"},
	"emotion-confident": {Light: "#007A7A", Dark: "#5FD7D7"},
}

var neutralColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"}

func colorFor(key reflection.StyleKey) lipgloss.AdaptiveColor {
	if c, ok := emotionColors[key]; ok {
		return c
	}
	return neutralColor
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	dim      lipgloss.Style
	err      lipgloss.Style
	success  lipgloss.Style
	spinner  lipgloss.Style
	card     lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}),
		subtitle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
			Italic(true),
		label: r.NewStyle().Bold(true),
		dim: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		err: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		spinner: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2),
		barFill: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		barEmpty: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}),
	}
}
